package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lumenacademy/lumen/internal/course"
	"github.com/lumenacademy/lumen/internal/llm"
	"github.com/lumenacademy/lumen/internal/structurer"
	"github.com/spf13/cobra"
)

var structureCmd = &cobra.Command{
	Use:   "structure <content-file>",
	Short: "Structure raw teaching material into a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		category, _ := cmd.Flags().GetString("category")
		teacherID, _ := cmd.Flags().GetString("teacher")
		modular, _ := cmd.Flags().GetBool("modular")

		if title == "" {
			return fmt.Errorf("--title is required")
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		cfg := structurer.DefaultConfig()
		if modular {
			cfg.Variant = structurer.VariantModular
		}

		fmt.Println("Structuring course content...")
		lessons, err := structurer.NewService(provider, cfg).Structure(ctx, string(raw), title)
		if err != nil {
			if llm.IsSchemaViolation(err) {
				return fmt.Errorf("the model returned an unusable course structure, rerun the command: %w", err)
			}
			return err
		}

		c := &course.Course{
			ID:        uuid.NewString(),
			Title:     title,
			Category:  category,
			TeacherID: teacherID,
			Lessons:   lessons,
		}
		if err := st.CourseRepo().Save(ctx, c); err != nil {
			return fmt.Errorf("save course: %w", err)
		}

		fmt.Printf("\nCourse %s created with %d lessons:\n\n", c.ID, len(lessons))
		printLessonTable(lessons)
		return nil
	},
}

func printLessonTable(lessons []course.Lesson) {
	fmt.Printf("%-4s  %-40s  %-16s  %s\n", "ID", "Title", "Format", "Min")
	fmt.Println(strings.Repeat("─", 70))
	for _, l := range lessons {
		fmt.Printf("%-4s  %-40s  %-16s  %d\n", l.ID, truncate(l.Title, 40), l.Format, l.Duration)
	}
}

func init() {
	structureCmd.Flags().StringP("title", "t", "", "Course title (required)")
	structureCmd.Flags().StringP("category", "c", "", "Course category")
	structureCmd.Flags().String("teacher", "", "Teacher identifier")
	structureCmd.Flags().Bool("modular", false, "Group lessons into modules before flattening")
}
