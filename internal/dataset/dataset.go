// Package dataset holds the static content the site is built from: quiz
// banks, periodic table entries and their property tables, chemistry facts,
// example reactions and the offline precache list.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stemsi/chemistry-web/internal/model"
)

//go:embed data/*.json
var files embed.FS

// OptionsPerQuestion is the fixed number of choices for every question.
const OptionsPerQuestion = 4

// DefaultBankID is used when a requested bank does not exist.
const DefaultBankID = "quiz10"

var ErrInvalidDataset = errors.New("invalid dataset")

var (
	loadOnce sync.Once
	banks    map[string]model.QuizBank
	bankIDs  []string
	elements []model.Element
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		var qb struct {
			Banks []model.QuizBank `json:"banks"`
		}
		if loadErr = readJSON("data/quiz_banks.json", &qb); loadErr != nil {
			return
		}
		if loadErr = ValidateBanks(qb.Banks); loadErr != nil {
			return
		}
		banks = make(map[string]model.QuizBank, len(qb.Banks))
		for _, b := range qb.Banks {
			banks[b.ID] = b
			bankIDs = append(bankIDs, b.ID)
		}
		sort.Slice(bankIDs, func(i, j int) bool { return banks[bankIDs[i]].Size < banks[bankIDs[j]].Size })

		var el struct {
			Elements []model.Element `json:"elements"`
		}
		if loadErr = readJSON("data/elements.json", &el); loadErr != nil {
			return
		}
		sort.Slice(el.Elements, func(i, j int) bool { return el.Elements[i].Number < el.Elements[j].Number })
		if loadErr = ValidateElements(el.Elements); loadErr != nil {
			return
		}
		elements = el.Elements
	})
}

func readJSON(name string, dst interface{}) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Err reports a failure decoding or validating the embedded data.
func Err() error {
	load()
	return loadErr
}

// ValidateBanks checks the advertised size and the answer key of every question.
func ValidateBanks(list []model.QuizBank) error {
	seen := make(map[string]bool, len(list))
	for _, b := range list {
		if b.ID == "" || seen[b.ID] {
			return fmt.Errorf("%w: duplicate or empty bank id %q", ErrInvalidDataset, b.ID)
		}
		seen[b.ID] = true
		if len(b.Questions) != b.Size {
			return fmt.Errorf("%w: bank %s has %d questions, advertises %d", ErrInvalidDataset, b.ID, len(b.Questions), b.Size)
		}
		for i, q := range b.Questions {
			if len(q.Options) != OptionsPerQuestion {
				return fmt.Errorf("%w: bank %s question %d has %d options", ErrInvalidDataset, b.ID, i, len(q.Options))
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return fmt.Errorf("%w: bank %s question %d answer index %d", ErrInvalidDataset, b.ID, i, q.CorrectIndex)
			}
		}
	}
	return nil
}

// ValidateElements requires a contiguous, sorted 1..N numbering.
func ValidateElements(list []model.Element) error {
	for i, e := range list {
		if e.Number != i+1 {
			return fmt.Errorf("%w: element at index %d has number %d", ErrInvalidDataset, i, e.Number)
		}
		if e.Symbol == "" || e.Name == "" || e.Category == "" {
			return fmt.Errorf("%w: element %d is incomplete", ErrInvalidDataset, e.Number)
		}
	}
	return nil
}

// Banks returns every quiz bank ordered by size.
func Banks() []model.QuizBank {
	load()
	out := make([]model.QuizBank, 0, len(bankIDs))
	for _, id := range bankIDs {
		out = append(out, banks[id])
	}
	return out
}

// Bank looks up a bank by id.
func Bank(id string) (model.QuizBank, bool) {
	load()
	b, ok := banks[id]
	return b, ok
}

// Elements returns all elements ordered by atomic number.
func Elements() []model.Element {
	load()
	return elements
}

// Element returns the element with the given atomic number.
func Element(number int) (model.Element, bool) {
	load()
	if number < 1 || number > len(elements) {
		return model.Element{}, false
	}
	return elements[number-1], true
}
