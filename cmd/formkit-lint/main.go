package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definition files for parse errors and unknown value kinds.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var violations []violation
	for _, path := range paths {
		files, err := definitionFiles(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, file := range files {
			violations = append(violations, lintFile(file, render.DefaultWidgets())...)
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func definitionFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			if !d.IsDir() {
				files = append(files, path)
			}
		}
		return nil
	})
	return files, err
}

func lintFile(path string, resolver *widgets.Registry) []violation {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []violation{{file: path, location: "-", message: err.Error()}}
	}
	forms, err := definition.Parse(path, raw)
	if err != nil {
		return []violation{{file: path, location: "-", message: err.Error()}}
	}

	var out []violation
	for _, form := range forms {
		out = append(out, lintGroups(path, form.Name, form.Groups, resolver)...)
	}
	return out
}

func lintGroups(file, location string, groups []model.FieldGroup, resolver *widgets.Registry) []violation {
	var out []violation
	for _, group := range groups {
		for _, field := range group.Fields {
			at := location + "." + field.Name.String()
			if len(field.SubGroups) > 0 {
				out = append(out, lintGroups(file, at, field.SubGroups, resolver)...)
				continue
			}
			if field.ValueKind == "" {
				continue
			}
			if _, ok := resolver.Resolve(field.ValueKind, model.Overlay(field.FieldProps, field.Extra)); ok {
				continue
			}
			message := fmt.Sprintf("unknown valueKind %q", field.ValueKind)
			if suggestion, found := resolver.Suggest(field.ValueKind); found {
				message += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			out = append(out, violation{file: file, location: at, message: message})
		}
	}
	return out
}
