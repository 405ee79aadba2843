package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/model"
)

var ErrBankNotFound = errors.New("quiz bank not found")

// QuizService serves the static question banks and creates controllers.
type QuizService struct {
	banks     map[string]model.QuizBank
	order     []string
	defaultID string
	log       zerolog.Logger
}

// NewQuizService indexes banks. defaultID is used for unknown bank ids.
func NewQuizService(banks []model.QuizBank, defaultID string, log zerolog.Logger) *QuizService {
	s := &QuizService{
		banks:     make(map[string]model.QuizBank, len(banks)),
		defaultID: defaultID,
		log:       log.With().Str("component", "quiz_service").Logger(),
	}
	for _, b := range banks {
		s.banks[b.ID] = b
		s.order = append(s.order, b.ID)
	}
	return s
}

// Summaries lists the banks offered at size selection.
func (s *QuizService) Summaries() []model.QuizBankSummary {
	out := make([]model.QuizBankSummary, 0, len(s.order))
	for _, id := range s.order {
		b := s.banks[id]
		out = append(out, model.QuizBankSummary{
			ID:    b.ID,
			Size:  b.Size,
			Label: fmt.Sprintf("%d Questions", b.Size),
		})
	}
	return out
}

// Resolve returns the named bank, or the default bank when it is unknown.
func (s *QuizService) Resolve(bankID string) model.QuizBank {
	if b, ok := s.banks[bankID]; ok {
		return b
	}
	s.log.Debug().Str("bank_id", bankID).Str("fallback", s.defaultID).Msg("Unknown quiz bank, using default")
	return s.banks[s.defaultID]
}

// GetBank returns a bank's public questions, without answers.
func (s *QuizService) GetBank(bankID string) (*model.QuizBankDetail, error) {
	b, ok := s.banks[bankID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBankNotFound, bankID)
	}
	questions := make([]model.PublicQuestion, len(b.Questions))
	for i, q := range b.Questions {
		questions[i] = model.PublicQuestion{
			Position: i + 1,
			Text:     q.Text,
			Options:  q.Options,
			HasHint:  q.HasHint(),
		}
	}
	return &model.QuizBankDetail{
		QuizBankSummary: model.QuizBankSummary{ID: b.ID, Size: b.Size, Label: fmt.Sprintf("%d Questions", b.Size)},
		Questions:       questions,
	}, nil
}

// NewController starts a fresh, idle quiz flow for one client.
func (s *QuizService) NewController() *QuizController {
	return NewQuizController(s)
}
