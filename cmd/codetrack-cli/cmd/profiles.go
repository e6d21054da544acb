package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Links platform usernames to students.",
}

var profileAddCmd = &cobra.Command{
	Use:   "add <roll-number> <platform> <username>",
	Short: "Registers a platform profile for a student.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		service, database, err := openService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer database.Close()

		if err := service.SeedPlatforms(cmd.Context()); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		student, err := service.StudentByRollNumber(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		profile, err := service.RegisterProfile(cmd.Context(), student.ID, args[1], args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Printf("registered %s\n", profile.ProfileUrl)
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <roll-number> <platform>",
	Short: "Unlinks a platform profile and drops its cached statistics.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		service, database, err := openService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer database.Close()

		student, err := service.StudentByRollNumber(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if err := service.DeleteProfile(cmd.Context(), student.ID, args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println("removed")
	},
}
