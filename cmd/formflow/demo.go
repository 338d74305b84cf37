package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/formflow-dev/formflow/internal/config"
	"github.com/formflow-dev/formflow/internal/wizard"
	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/schema"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func demoCmd() *cobra.Command {
	var (
		onChange bool
		onBlur   bool
		skip     bool
		reset    bool
		logFile  string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive signup wizard demo",
		Long: `Run a multi-section signup form in the terminal.

The demo drives the full engine: typed values, per-field
validation, gated section navigation, and a simulated submission.

Keys:
  tab / shift+tab   move between fields
  pgdn / pgup       move between sections
  left/right, space pick options and toggle checkboxes
  ctrl+s            submit from anywhere
  esc               cancel

Examples:
  formflow demo
  formflow demo --on-change
  formflow demo --skip --log-file=/tmp/formflow.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(onChange, onBlur, skip, reset, logFile)
		},
	}

	cmd.Flags().BoolVar(&onChange, "on-change", false, "Validate on every keystroke")
	cmd.Flags().BoolVar(&onBlur, "on-blur", false, "Validate when a field loses focus")
	cmd.Flags().BoolVar(&skip, "skip", false, "Allow jumping past unvisited sections")
	cmd.Flags().BoolVar(&reset, "reset", false, "Restore initial values after a successful submit")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write engine logs to this file")

	return cmd
}

func runDemo(onChange, onBlur, skip, reset bool, logFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if onChange {
		cfg.Demo.ValidateOnChange = true
	}
	if onBlur {
		cfg.Demo.ValidateOnBlur = true
	}
	if skip {
		cfg.Demo.AllowSectionSkipping = true
	}
	if reset {
		cfg.Demo.ResetOnSubmit = true
	}

	logger, closeLog, err := demoLogger(cfg.Log.Level, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	s := schema.MustNew(demoSections())

	// ResetOnSubmit wipes the engine's values after success, so the
	// submitted snapshot is captured in the callback.
	var submitted schema.Values

	eng, err := engine.New(engine.Config{
		Schema: s,
		Options: engine.Options{
			ValidateOnChange:     cfg.Demo.ValidateOnChange,
			ValidateOnBlur:       cfg.Demo.ValidateOnBlur,
			ValidateOnSubmit:     true,
			AllowSectionSkipping: cfg.Demo.AllowSectionSkipping,
			ResetOnSubmit:        cfg.Demo.ResetOnSubmit,
		},
		Callbacks: engine.Callbacks{
			OnSubmit: func(ctx context.Context, values schema.Values) error {
				submitted = values.Clone()
				// Pretend to talk to a backend.
				select {
				case <-time.After(400 * time.Millisecond):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	m, err := wizard.Run(eng)
	if err != nil {
		return err
	}

	if !m.Engine().Succeeded() {
		warn("Cancelled, nothing submitted")
		return nil
	}

	printBanner()
	success("Form submitted")
	fmt.Println()
	for _, sec := range s.Sections() {
		for _, f := range sec.Fields {
			info("%-14s %s", f.Label+":", displayValue(f, submitted[f.Name]))
		}
	}
	fmt.Println()

	return nil
}

// demoSections builds the sample signup form. It deliberately touches
// every widget the wizard renders: text, email, password, number,
// select, radio, checkbox, boolean, and array fields, plus a
// section-level validator.
func demoSections() []schema.Section {
	return []schema.Section{
		{
			ID:          "account",
			Label:       "Account",
			Description: "Who is signing up",
			Fields: []schema.Field{
				{
					Name:        "name",
					Label:       "Name",
					Type:        schema.TypeText,
					Required:    true,
					Placeholder: "Ada Lovelace",
				},
				{
					Name:        "email",
					Label:       "Email",
					Type:        schema.TypeEmail,
					Required:    true,
					Placeholder: "you@example.com",
					Rule: &schema.Rule{
						Pattern: emailPattern,
						Message: "Enter a valid email address",
					},
				},
				{
					Name:     "password",
					Label:    "Password",
					Type:     schema.TypePassword,
					Required: true,
					HelpText: "At least 8 characters",
					Rule: &schema.Rule{
						MinLength: schema.Int(8),
					},
				},
			},
		},
		{
			ID:          "profile",
			Label:       "Profile",
			Description: "Tell us about your work",
			Fields: []schema.Field{
				{
					Name:         "role",
					Label:        "Role",
					Type:         schema.TypeSelect,
					DefaultValue: "developer",
					Options: []schema.Option{
						{Value: "developer", Label: "Developer"},
						{Value: "operator", Label: "Operator"},
						{Value: "designer", Label: "Designer"},
						{Value: "manager", Label: "Manager"},
					},
				},
				{
					Name:        "experience",
					Label:       "Experience",
					Type:        schema.TypeNumber,
					Placeholder: "years",
					Rule: &schema.Rule{
						Min:     schema.Float64(0),
						Max:     schema.Float64(60),
						Message: "Experience must be between 0 and 60 years",
					},
				},
				{
					Name:     "skills",
					Label:    "Skills",
					Type:     schema.TypeArray,
					MaxItems: 5,
					HelpText: "+ adds an entry, backspace removes the last one",
				},
				{
					Name:         "newsletter",
					Label:        "Subscribe to the newsletter",
					Type:         schema.TypeCheckbox,
					DefaultValue: false,
				},
			},
		},
		{
			ID:          "review",
			Label:       "Review",
			Description: "Pick a plan and confirm",
			Fields: []schema.Field{
				{
					Name:         "plan",
					Label:        "Plan",
					Type:         schema.TypeRadio,
					DefaultValue: "free",
					Options: []schema.Option{
						{Value: "free", Label: "Free"},
						{Value: "pro", Label: "Pro"},
						{Value: "team", Label: "Team"},
					},
				},
				{
					Name:         "terms",
					Label:        "I accept the terms of service",
					Type:         schema.TypeBoolean,
					DefaultValue: false,
				},
			},
			Validate: func(v schema.Values) string {
				if on, _ := v["terms"].(bool); !on {
					return "You must accept the terms to sign up"
				}
				return ""
			},
		},
	}
}

// demoLogger builds the engine logger. The wizard owns the terminal
// while it runs, so logs go to a file or nowhere.
func demoLogger(level, path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))

	return logger, func() { f.Close() }, nil
}

// displayValue renders a submitted value for the summary printout.
func displayValue(f schema.Field, value any) string {
	switch f.Type {
	case schema.TypePassword:
		s, _ := value.(string)
		return strings.Repeat("•", len([]rune(s)))
	case schema.TypeCheckbox, schema.TypeBoolean:
		if on, _ := value.(bool); on {
			return "yes"
		}
		return "no"
	case schema.TypeArray:
		items, _ := value.([]any)
		if len(items) == 0 {
			return "(none)"
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, ", ")
	}

	if value == nil || value == "" {
		return "(none)"
	}
	return fmt.Sprintf("%v", value)
}
