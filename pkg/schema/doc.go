// Package schema defines the declarative form model: fields, validation
// rules, sections, and the indexed Schema the engine is constructed from.
//
// # Overview
//
// A form is an ordered list of sections; each section owns an ordered list
// of fields. Field names are unique across the whole form, not just their
// section. New validates those invariants once at construction so the
// engine can trust them afterwards.
//
// # Usage
//
//	s, err := schema.New([]schema.Section{
//	    {
//	        ID:    "basic",
//	        Label: "Basic",
//	        Fields: []schema.Field{
//	            {Name: "name", Label: "Name", Type: schema.TypeText, Required: true},
//	            {Name: "email", Label: "Email", Type: schema.TypeEmail, Required: true,
//	                Rule: &schema.Rule{Pattern: regexp.MustCompile(`@`)}},
//	        },
//	    },
//	    {ID: "details", Label: "Details", Fields: []schema.Field{
//	        {Name: "description", Label: "Description", Type: schema.TypeTextarea},
//	    }},
//	})
//
// The schema is immutable after construction; all engine state lives in
// the engine package.
package schema
