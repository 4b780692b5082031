package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Inspect the organization",
}

var orgInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		org, err := client.Organization.Get(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", org.ID, org.Name)
		return nil
	},
}

var orgServicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the organization's services",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		list, err := client.Services.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, svc := range list.Services {
			fmt.Printf("%s\t%s\t%s\n", svc.ID, svc.Name, svc.Description)
		}
		return nil
	},
}

var orgAgentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the organization's agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		list, err := client.Organization.Agents(cmd.Context(), nil)
		if err != nil {
			return err
		}
		for _, agent := range list.Agents {
			fmt.Printf("%s\t%s\n", agent.ID, agent.Name)
		}
		return nil
	},
}

var orgUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the organization's users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		list, err := client.Users.List(cmd.Context(), nil)
		if err != nil {
			return err
		}
		for _, user := range list.Users {
			fmt.Printf("%s\t%s\t%s\n", user.ID, user.Email, user.RoleName)
		}
		return nil
	},
}

func init() {
	orgCmd.AddCommand(orgInfoCmd)
	orgCmd.AddCommand(orgServicesCmd)
	orgCmd.AddCommand(orgAgentsCmd)
	orgCmd.AddCommand(orgUsersCmd)
}
