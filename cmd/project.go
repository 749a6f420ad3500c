package cmd

import (
	"context"
	"os"

	"github.com/doxly/doxly/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "project commands",
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(createProjectCmd())
	projectCmd.AddCommand(listProjectCmd())
}

func createProjectCmd() *cobra.Command {
	var name string
	var code string
	var folderPath string

	var required = []string{"name", "code"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a project",
		Example: "doxly project create -n <name> -c <code>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			app := wire(false)
			project := &model.Project{
				Name:       name,
				Code:       code,
				FolderPath: folderPath,
			}
			if err := app.projects.CreateProject(context.Background(), project); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("project created with id: %s", project.ID)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "project name (required)")
	command.Flags().StringVarP(&code, "code", "c", "", "alphanumeric project code (required)")
	command.Flags().StringVarP(&folderPath, "folder", "f", "", "folder path, defaults to /projects/<code>/")

	return command
}

func listProjectCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "list",
		Short:   "list projects",
		Example: "doxly project list",
		Run: func(cmd *cobra.Command, args []string) {
			app := wire(false)
			projects, err := app.projects.ListProjects(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Code", "Folder"})
			for _, p := range projects {
				table.Append([]string{p.ID, p.Name, p.Code, p.FolderPath})
			}
			table.Render()
		},
	}

	return command
}
