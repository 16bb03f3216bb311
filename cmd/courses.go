package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List stored courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		courses, err := st.CourseRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet. Create one with: lumen structure <content-file> --title <title>")
			return nil
		}

		fmt.Printf("%-36s  %-32s  %-16s  %s\n", "ID", "Title", "Category", "Lessons")
		fmt.Println(strings.Repeat("─", 96))
		for _, c := range courses {
			fmt.Printf("%-36s  %-32s  %-16s  %d\n",
				c.ID, truncate(c.Title, 32), truncate(c.Category, 16), len(c.Lessons))
		}
		return nil
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show a course and its lessons",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		c, err := st.CourseRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get course: %w", err)
		}
		if c == nil {
			return fmt.Errorf("course %s not found", args[0])
		}

		fmt.Printf("Title:     %s\n", c.Title)
		if c.Category != "" {
			fmt.Printf("Category:  %s\n", c.Category)
		}
		if c.Description != "" {
			fmt.Printf("About:     %s\n", c.Description)
		}
		fmt.Println()
		printLessonTable(c.Lessons)
		return nil
	},
}

func init() {
	coursesCmd.AddCommand(courseShowCmd)
}
