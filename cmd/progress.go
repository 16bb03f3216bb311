package cmd

import (
	"fmt"
	"strings"

	"github.com/lumenacademy/lumen/internal/progression"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <course-id>",
	Short: "Show a student's progress through a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")

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

		p, err := st.ProgressStore().Get(ctx, studentID, c.ID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}
		if p == nil {
			p = progression.NewProgress(studentID, c.ID)
		}

		engine := progression.NewEngine()

		fmt.Printf("Course:   %s\n", c.Title)
		fmt.Printf("Student:  %s\n", studentID)
		fmt.Printf("Mastery:  %.0f\n", p.MasteryScore)
		if p.CertificateEarned {
			fmt.Println("Certificate: earned")
		}
		fmt.Println()

		fmt.Printf("%-4s  %-40s  %s\n", "#", "Lesson", "State")
		fmt.Println(strings.Repeat("─", 56))
		for i, l := range c.Lessons {
			fmt.Printf("%-4d  %-40s  %s\n", i+1, truncate(l.Title, 40), stateLabel(engine.LessonStateAt(c, p, i)))
		}
		return nil
	},
}

func stateLabel(s progression.LessonState) string {
	switch s {
	case progression.Done:
		return "done"
	case progression.Unlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

func init() {
	progressCmd.Flags().StringP("student", "s", "default", "Student identifier")
}
