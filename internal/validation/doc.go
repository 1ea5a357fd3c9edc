// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator that reports fields by their
// koanf or json names and translates failures into readable messages. It validates
// configuration sections at load time and query parameters in the HTTP API.
//
// Custom tags:
//   - langtag: a BCP 47 language tag ("en-US"), parsed with golang.org/x/text/language
//   - langcode: a lower-case ISO 639 code as found in original_language ("en")
//
// Example:
//
//	type TablesQuery struct {
//	    Limit    int    `query:"limit" validate:"min=0,max=1000"`
//	    Language string `query:"language" validate:"omitempty,langcode"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
