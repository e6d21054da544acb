package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	studentCmd.AddCommand(studentAddCmd)
	studentCmd.AddCommand(studentListCmd)
	rootCmd.AddCommand(studentCmd)
}

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manages the student roster.",
}

var studentAddCmd = &cobra.Command{
	Use:   "add <roll-number> <name>",
	Short: "Adds a student to the roster.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		service, database, err := openService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer database.Close()

		student, err := service.CreateStudent(cmd.Context(), args[0], args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Printf("created student %d (%s)\n", student.ID, student.RollNumber)
	},
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the roster.",
	Run: func(cmd *cobra.Command, args []string) {
		service, database, err := openService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer database.Close()

		students, err := service.ListStudents(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Roll Number", "Name"})
		for _, s := range students {
			t.AppendRow(table.Row{s.ID, s.RollNumber, s.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
