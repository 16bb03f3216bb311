package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lumenacademy/lumen/internal/assessment"
	"github.com/lumenacademy/lumen/internal/llm"
	"github.com/lumenacademy/lumen/internal/progression"
	"github.com/lumenacademy/lumen/internal/session"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <course-id> <lesson-number>",
	Short: "Start a tutoring session for a lesson",
	Long: "Opens an interactive tutoring session for the given lesson (1-based).\n" +
		"Type /done to complete the lesson, /quit to leave without completing.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")

		lessonNum, err := strconv.Atoi(args[1])
		if err != nil || lessonNum < 1 {
			return fmt.Errorf("invalid lesson number %q", args[1])
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		c, err := st.CourseRepo().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get course: %w", err)
		}
		if c == nil {
			return fmt.Errorf("course %s not found", args[0])
		}

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		orch := session.New(
			progression.NewEngine(),
			assessment.NewAssessor(provider, assessment.DefaultConfig()),
			st.ProgressStore(),
		)

		view, err := orch.OpenLesson(ctx, c, studentID, lessonNum-1)
		if err != nil {
			var locked *session.ErrLessonLocked
			if errors.As(err, &locked) {
				return fmt.Errorf("lesson %d is locked: complete the earlier lessons first", lessonNum)
			}
			return err
		}

		fmt.Printf("Lesson %d: %s [%s]\n\n", lessonNum, view.Lesson.Title, view.Lesson.Format)
		fmt.Printf("Tutor: %s\n", assessment.Greeting)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nYou: ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch line {
			case "/quit":
				if err := orch.Checkpoint(ctx, view); err != nil {
					return fmt.Errorf("save progress: %w", err)
				}
				fmt.Println("Session saved. See you next time!")
				return nil
			case "/done":
				result, err := orch.CompleteLesson(ctx, view)
				if err != nil {
					var invalid *progression.ErrInvalidTransition
					if errors.As(err, &invalid) {
						return fmt.Errorf("cannot complete lesson: %s", invalid.Reason)
					}
					return err
				}
				fmt.Printf("Lesson complete. Mastery score: %.0f\n", result.Progress.MasteryScore)
				if result.CourseCompleted {
					fmt.Println("Course finished! Your certificate has been earned.")
				}
				return nil
			}

			outcome := orch.SubmitMessage(ctx, view, line)
			fmt.Printf("\nTutor: %s\n", outcome.Reply)
			for _, msg := range outcome.Messages {
				fmt.Printf("\nTutor: %s\n", msg)
			}
			if outcome.ReadyToAdvance {
				fmt.Println("\n(You can type /done to complete this lesson.)")
			}
		}
		return orch.Checkpoint(ctx, view)
	},
}

func init() {
	chatCmd.Flags().StringP("student", "s", "default", "Student identifier")
}
