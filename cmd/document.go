package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/doxly/doxly/internal/model"
	"github.com/doxly/doxly/internal/service"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createDocCmd())
	rootCmd.AddCommand(getDocCmd())
	rootCmd.AddCommand(listDocCmd())
	rootCmd.AddCommand(uploadVersionCmd())
	rootCmd.AddCommand(listDocVersionsCmd())
	rootCmd.AddCommand(shareDocCmd())
	rootCmd.AddCommand(docStatusCmd())
	rootCmd.AddCommand(docRefsCmd())
	rootCmd.AddCommand(encryptDocCmd())
	rootCmd.AddCommand(setStatusCodeCmd())
	rootCmd.AddCommand(completeDocCmd())
	rootCmd.AddCommand(deleteDocCmd())
}

func createDocCmd() *cobra.Command {
	var projectID string
	var name string
	var file string
	var description string
	var encrypt bool
	var workingDays int
	var references []string

	var required = []string{"name", "file"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a document",
		Long:    `upload a new document; omitting the project assigns the default project`,
		Example: "doxly create -n <name> -f <file> -p <project-id> --encrypt --working-days 10",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			content, err := os.ReadFile(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			app := wire(false)
			doc, err := app.documents.CreateDocument(context.Background(), &service.CreateDocumentRequest{
				ProjectID:   projectID,
				Name:        name,
				Description: description,
				FileName:    filepath.Base(file),
				Content:     content,
				UploadedBy:  actingUser(),
				Encrypt:     encrypt,
				References:  references,
				WorkingDays: workingDays,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document created with id: %s", doc.ID)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Doc ID", "Reference", "Version"})
			table.Append([]string{doc.ID, doc.DocID, doc.ReferenceCode, strconv.FormatInt(doc.Version, 10)})
			table.Render()
		},
	}

	command.Flags().StringVarP(&projectID, "project-id", "p", "", "project id")
	command.Flags().StringVarP(&name, "name", "n", "", "document name (required)")
	command.Flags().StringVarP(&file, "file", "f", "", "file to upload (required)")
	command.Flags().StringVarP(&description, "description", "m", "", "description")
	command.Flags().BoolVarP(&encrypt, "encrypt", "e", false, "encrypt the payload")
	command.Flags().IntVar(&workingDays, "working-days", 0, "working days until due")
	command.Flags().StringSliceVar(&references, "refs", nil, "composite keys this document references")
	bindUserFlag(command)

	command.Flags().SortFlags = false

	return command
}

func getDocCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a document by id or DOC code",
		Example: "doxly get -d <doc-id>\ndoxly get -d DOC-2024-0001",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			app := wire(false)

			var doc *model.Document
			id, err := uuid.Parse(docID)
			if err == nil {
				doc, err = app.documents.GetDocument(context.Background(), id)
			} else {
				doc, err = app.documents.GetDocumentByCode(context.Background(), docID)
			}
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Doc ID", "Name", "Version", "Encrypted", "Status Code"})
			table.Append([]string{
				doc.ID,
				doc.DocID,
				doc.Name,
				strconv.FormatInt(doc.Version, 10),
				strconv.FormatBool(doc.Encrypted),
				doc.StatusCode,
			})
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func listDocCmd() *cobra.Command {
	var projectID string

	var required = []string{"project-id"}

	command := &cobra.Command{
		Use:     "list",
		Short:   "list documents of a project",
		Example: "doxly list -p <project-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(projectID)
			if err != nil {
				color.Red("invalid project id, expected a valid uuid")
				return
			}

			app := wire(false)
			docs, total, err := app.documents.ListDocuments(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Doc ID", "Name", "Version", "Due Date"})
			for _, doc := range docs {
				due := ""
				if doc.DueDate != nil {
					due = doc.DueDate.Format("2006-01-02")
				}
				table.Append([]string{doc.ID, doc.DocID, doc.Name, strconv.FormatInt(doc.Version, 10), due})
			}
			table.Render()

			logrus.Infof("total documents: %d", total)
		},
	}

	command.Flags().StringVarP(&projectID, "project-id", "p", "", "project id (required)")

	return command
}

func uploadVersionCmd() *cobra.Command {
	var docID string
	var file string

	var required = []string{"doc-id", "file"}

	command := &cobra.Command{
		Use:     "upload",
		Short:   "upload a new version of a document",
		Example: "doxly upload -d <doc-id> -f <file>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			content, err := os.ReadFile(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			app := wire(false)
			doc, err := app.documents.UploadVersion(context.Background(), id, content, filepath.Base(file), actingUser())
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s is now at version %d", doc.ID, doc.Version)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().StringVarP(&file, "file", "f", "", "file to upload (required)")
	bindUserFlag(command)

	return command
}

func listDocVersionsCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "versions",
		Short:   "list versions of a document",
		Example: "doxly versions -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			versions, err := app.documents.ListVersions(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Version", "File", "Size", "Uploaded At"})
			for _, v := range versions {
				table.Append([]string{
					strconv.FormatInt(v.Version, 10),
					v.FileName,
					strconv.FormatInt(v.FileSize, 10),
					v.CreatedAt.Format(time.RFC3339),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func shareDocCmd() *cobra.Command {
	var docID string
	var sharedWith string
	var permission string
	var expiresIn int

	var required = []string{"doc-id", "with"}

	command := &cobra.Command{
		Use:     "share",
		Short:   "share a document",
		Example: "doxly share -d <doc-id> -w <user-id> -l view --expires-in 7",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			var expiresAt *time.Time
			if expiresIn > 0 {
				t := time.Now().AddDate(0, 0, expiresIn)
				expiresAt = &t
			}

			app := wire(true)
			share, err := app.documents.ShareDocument(context.Background(), id, actingUser(), sharedWith, permission, expiresAt)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document shared with %s (%s)", share.SharedWith, share.Permission)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().StringVarP(&sharedWith, "with", "w", "", "recipient user id (required)")
	command.Flags().StringVarP(&permission, "level", "l", "view", "permission level: view, edit or download")
	command.Flags().IntVar(&expiresIn, "expires-in", 0, "days until the share expires")
	bindUserFlag(command)

	return command
}

func docStatusCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "status",
		Short:   "show the derived status of a document",
		Example: "doxly status -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			classification, err := app.documents.Classify(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			closeDate := ""
			if classification.FinalCloseDate != nil {
				closeDate = classification.FinalCloseDate.Format("2006-01-02")
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Status", "Delay", "Overdue Days", "Final Close", "Latest"})
			table.Append([]string{
				string(classification.Status),
				string(classification.Delay),
				strconv.Itoa(classification.OverdueDays),
				closeDate,
				strconv.FormatBool(classification.LatestRevision),
			})
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func docRefsCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "refs",
		Short:   "list documents referencing this one",
		Example: "doxly refs -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			refs, err := app.documents.References(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			dates, err := app.documents.ReferenceDates(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			fmt.Println("referenced by:", strings.Join(refs, ", "))
			fmt.Println("reference dates:", strings.Join(dates, ", "))
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func encryptDocCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "encrypt",
		Short:   "encrypt a document uploaded in the clear",
		Example: "doxly encrypt -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			doc, err := app.documents.EncryptDocument(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s encrypted at version %d", doc.ID, doc.Version)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func setStatusCodeCmd() *cobra.Command {
	var docID string
	var code string

	var required = []string{"doc-id", "code"}

	command := &cobra.Command{
		Use:     "review",
		Short:   "record a review status code",
		Example: "doxly review -d <doc-id> -c C",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			if err := app.documents.SetStatusCode(context.Background(), id, code); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("status code set to %s", code)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().StringVarP(&code, "code", "c", "", "review code: URE, A, B, C, D or E (required)")

	return command
}

func completeDocCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "complete",
		Short:   "mark a document completed",
		Example: "doxly complete -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			if err := app.documents.CompleteDocument(context.Background(), id, time.Now()); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s completed", docID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func deleteDocCmd() *cobra.Command {
	var docID string
	var hard bool

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a document",
		Example: "doxly delete -d <doc-id> [--hard]",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				color.Red("invalid document id, expected a valid uuid")
				return
			}

			app := wire(false)
			if hard {
				err = app.documents.EraseDocument(context.Background(), id)
			} else {
				err = app.documents.DeleteDocument(context.Background(), id)
			}
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s deleted", docID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().BoolVar(&hard, "hard", false, "remove the row entirely instead of soft deleting")

	return command
}

func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		return true
	}

	return false
}
