package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/service"
)

// asker turns the question on screen into the commands to dispatch next.
type asker func(q *service.QuestionView) ([]service.QuizCommand, error)

func newQuizCmd(app *cli) *cobra.Command {
	var size int
	var answers string

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a chemistry quiz",
		Long: `Take one of the quiz banks in the terminal. Without a terminal on stdin
the answers come from --answers, a comma-separated list of option letters
(A-D); an empty entry leaves that question unanswered.`,
		Example: `  chemctl quiz --size 10
  chemctl quiz --size 5 --answers B,A,,C,D`,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz := service.NewQuizService(dataset.Banks(), dataset.DefaultBankID, app.log)

			ask := promptAsker(cmd.OutOrStdout())
			if answers != "" || !interactive() {
				scripted, err := parseAnswers(answers)
				if err != nil {
					return err
				}
				ask = scriptedAsker(scripted)
			}

			review, err := runQuiz(quiz.NewController(), "quiz"+strconv.Itoa(size), ask, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printReview(cmd.OutOrStdout(), review)
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", 10, "number of questions (5, 10, 20, 30 or 40)")
	cmd.Flags().StringVar(&answers, "answers", "", "comma-separated option letters for non-interactive runs")
	return cmd
}

// runQuiz starts bank on ctrl and dispatches the asker's commands until
// the quiz is submitted. Progress over answered questions goes to progress.
func runQuiz(ctrl *service.QuizController, bank string, ask asker, progress io.Writer) (*service.ReviewView, error) {
	view, err := ctrl.Dispatch(service.QuizCommand{Action: service.ActionSelectSize, Bank: bank})
	if err != nil {
		return nil, err
	}
	if view.Question == nil {
		return nil, fmt.Errorf("quiz did not start")
	}

	bar := progressbar.NewOptions(view.Question.Total,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(view.Question.BankID),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(interactive()),
	)
	defer func() { _ = bar.Finish() }()

	for view.State == service.QuizAnswering {
		cmds, err := ask(view.Question)
		if err != nil {
			return nil, err
		}
		for _, c := range cmds {
			view, err = ctrl.Dispatch(c)
			if err != nil {
				return nil, err
			}
		}
		if view.Question != nil {
			_ = bar.Set(view.Question.Answered)
		}
	}

	if view.Review == nil {
		return nil, fmt.Errorf("quiz ended in state %q", view.State)
	}
	return view.Review, nil
}

// parseAnswers reads "B,A,,C" into option indexes; -1 marks a skipped
// question.
func parseAnswers(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		switch {
		case p == "":
			out[i] = -1
		case len(p) == 1 && p[0] >= 'A' && p[0] <= 'D':
			out[i] = int(p[0] - 'A')
		default:
			return nil, fmt.Errorf("answer %d: %q is not one of A, B, C, D", i+1, p)
		}
	}
	return out, nil
}

// scriptedAsker answers question i with answers[i] and moves on. Next on
// the last question submits, so the run always terminates.
func scriptedAsker(answers []int) asker {
	return func(q *service.QuestionView) ([]service.QuizCommand, error) {
		next := service.QuizCommand{Action: service.ActionNext}
		i := q.Position - 1
		if i < len(answers) && answers[i] >= 0 {
			return []service.QuizCommand{{Action: service.ActionSelectOption, Option: answers[i]}, next}, nil
		}
		return []service.QuizCommand{next}, nil
	}
}

const (
	choiceHint     = "Show hint"
	choicePrevious = "Previous question"
	choiceSkip     = "Skip"
	choiceSubmit   = "Submit quiz"
)

func promptAsker(out io.Writer) asker {
	return func(q *service.QuestionView) ([]service.QuizCommand, error) {
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", q.Position, q.Total, q.Text)
		if q.HintVisible {
			fmt.Fprintf(out, "Hint: %s\n", q.Hint)
		}

		items := make([]string, 0, len(q.Options)+4)
		cursor := 0
		for _, o := range q.Options {
			label := fmt.Sprintf("%c. %s", 'A'+o.Index, o.Text)
			if o.Selected {
				label += "  (selected)"
				cursor = o.Index
			}
			items = append(items, label)
		}
		if q.HintAvailable && !q.HintVisible {
			items = append(items, choiceHint)
		}
		if q.CanPrevious {
			items = append(items, choicePrevious)
		}
		if !q.IsLast {
			items = append(items, choiceSkip)
		}
		items = append(items, choiceSubmit)

		prompt := promptui.Select{
			Label:     "Your answer",
			Items:     items,
			CursorPos: cursor,
			Size:      len(items),
		}
		idx, picked, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil, fmt.Errorf("quiz cancelled")
			}
			return nil, fmt.Errorf("answer prompt: %w", err)
		}

		switch picked {
		case choiceHint:
			return []service.QuizCommand{{Action: service.ActionRevealHint}}, nil
		case choicePrevious:
			return []service.QuizCommand{{Action: service.ActionPrevious}}, nil
		case choiceSkip:
			return []service.QuizCommand{{Action: service.ActionNext}}, nil
		case choiceSubmit:
			return []service.QuizCommand{{Action: service.ActionSubmit}}, nil
		}
		return []service.QuizCommand{
			{Action: service.ActionSelectOption, Option: idx},
			{Action: service.ActionNext},
		}, nil
	}
}

func printReview(out io.Writer, r *service.ReviewView) {
	fmt.Fprintf(out, "\n%s %s\n", r.Tier.Emoji, r.Tier.Label)
	fmt.Fprintf(out, "Score: %d/%d (%d%%)\n\n", r.Score, r.Total, r.Percentage)

	for _, item := range r.Items {
		mark := "✗"
		if item.Correct {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %d. %s\n", mark, item.Position, item.Question)
		fmt.Fprintf(out, "    Your answer: %s\n", item.YourAnswer)
		if item.CorrectAnswer != "" {
			fmt.Fprintf(out, "    Correct answer: %s\n", item.CorrectAnswer)
		}
		if item.Explanation != "" {
			fmt.Fprintf(out, "    %s\n", item.Explanation)
		}
	}
}
