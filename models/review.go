package models

import (
	"fmt"
	"strings"
)

// Source identifies the review platform a record was collected from.
type Source string

const (
	SourceG2             Source = "G2"
	SourceCapterra       Source = "Capterra"
	SourceSoftwareAdvice Source = "SoftwareAdvice"
)

// AllSources lists the known platforms in collection order. The collector
// iterates this slice when "all" is requested, so output ordering follows it.
var AllSources = []Source{SourceG2, SourceCapterra, SourceSoftwareAdvice}

// CLI selector values accepted by --source.
const (
	SelectorG2             = "g2"
	SelectorCapterra       = "capterra"
	SelectorSoftwareAdvice = "software-advice"
	SelectorAll            = "all"
)

// ParseSelector maps a CLI source selector to the platforms it names.
// "all" expands to every known platform in collection order.
func ParseSelector(s string) ([]Source, error) {
	switch strings.ToLower(s) {
	case SelectorG2:
		return []Source{SourceG2}, nil
	case SelectorCapterra:
		return []Source{SourceCapterra}, nil
	case SelectorSoftwareAdvice:
		return []Source{SourceSoftwareAdvice}, nil
	case SelectorAll:
		return AllSources, nil
	default:
		return nil, NewScrapeError(ErrCodeInvalidInput,
			fmt.Sprintf("unknown source %q (want g2, capterra, software-advice or all)", s), nil)
	}
}

// Review is the normalized record every producer emits, regardless of
// platform. Field names and types are the output-file contract.
//
// HelpfulVotes stays a string because platforms render it as free text
// ("24", "1.2K"); it is carried verbatim for source fidelity.
type Review struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"` // ISO YYYY-MM-DD
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"` // 1..5
	HelpfulVotes string `json:"helpful_votes"`
	Source       Source `json:"source"`
}

// RatingValid reports whether the rating lies in the allowed 1..5 band.
func (r Review) RatingValid() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
