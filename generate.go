package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"flutter-scaffold/backend/internal/features/scaffold/application"
	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	architecture string
	folders      []string
	description  string
	output       string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a project locally and write its zip archive",
		Example: `  flutter-scaffold generate shop --architecture BLoC
  flutter-scaffold generate notes -a "Clean Architecture" --folder lib/config -o notes.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			project, err := a.service.Generate(cmd.Context(), &domain.ProjectRequest{
				ProjectName:   args[0],
				Architecture:  opts.architecture,
				CustomFolders: opts.folders,
				Description:   opts.description,
			})
			if err != nil {
				return err
			}

			dst := opts.output
			if dst == "" {
				dst = project.ArchiveName()
			}
			if err := moveArchive(project, dst); err != nil {
				a.service.CleanupArchive(project)
				return err
			}

			printReport(cmd.OutOrStdout(), project, dst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.architecture, "architecture", "a", string(domain.DefaultArchitecture), "project architecture")
	cmd.Flags().StringArrayVar(&opts.folders, "folder", nil, "extra folder to create, repeatable")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "short app description used for the README overview")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "archive destination (default <name>.zip in the current directory)")
	return cmd
}

// moveArchive relocates the generated archive to dst, copying when a rename
// is not possible (e.g. across filesystems).
func moveArchive(project *application.GeneratedProject, dst string) error {
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if absDst == project.ArchivePath {
		return nil
	}
	if err := os.Rename(project.ArchivePath, absDst); err == nil {
		return nil
	}

	src, err := os.Open(project.ArchivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	out, err := os.Create(absDst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Join(fmt.Errorf("copy archive to %s: %w", dst, err), os.Remove(absDst))
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return os.Remove(project.ArchivePath)
}

func printReport(w io.Writer, project *application.GeneratedProject, dst string) {
	fmt.Fprintf(w, "%s %s (%s)\n", styleSuccess.Render("✔"), styleNoun.Render(project.ID), project.Architecture)
	for _, result := range project.Report.Results {
		line := "  " + result.Folder + "/"
		if result.File != "" {
			line += styleDim.Render(" " + result.File)
		}
		if !result.OK() {
			line += " " + styleFailed.Render("failed: "+result.Err.Error())
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%s %s\n", styleDim.Render("archive:"), dst)
}
