// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeData is the normalized resume produced by the external parsing collaborator.
// Every field is optional; scorers treat absent data as a zero/neutral contribution.
type ResumeData struct {
	FileName       string          `json:"fileName,omitempty"`
	Contact        *Contact        `json:"contact,omitempty"`
	Experience     []Position      `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Metadata       *Metadata       `json:"metadata,omitempty"`
}

// Contact holds the optional contact fields of a resume
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Location string `json:"location,omitempty"`
}

// Position is a single employment entry. Dates are kept as the raw strings the parser found.
type Position struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Dates       string `json:"dates,omitempty"` // Unsplit range such as "Jan 2020 - Present"
	Description string `json:"description,omitempty"`
}

// Education is a single education entry
type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Dates       string `json:"dates,omitempty"`
}

// Certification is a single certification entry
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Metadata carries document-level facts and raw structural hints from extraction.
type Metadata struct {
	WordCount     int      `json:"wordCount,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	HasPhoto      bool     `json:"hasPhoto,omitempty"`
	FileFormat    string   `json:"fileFormat,omitempty"`
	FileSizeBytes int64    `json:"fileSizeBytes,omitempty"`
	FontsUsed     []string `json:"fontsUsed,omitempty"`
	HeaderText    string   `json:"headerText,omitempty"`
	FooterText    string   `json:"footerText,omitempty"`
	HasTables     bool     `json:"hasTables,omitempty"`
	HasTextBoxes  bool     `json:"hasTextBoxes,omitempty"`
	RawText       string   `json:"rawText,omitempty"`
}

// bulletMarkers are the list prefixes stripped from description lines
var bulletMarkers = []string{"- ", "* ", "• ", "· ", "‣ ", "◦ ", "▪ ", "o "}

// Bullets splits the position description into trimmed, non-empty lines with list
// markers removed. Bullets are derived per scoring call and never stored.
func (p Position) Bullets() []string {
	if strings.TrimSpace(p.Description) == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(p.Description, "\r\n", "\n"), "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, marker := range bulletMarkers {
			if strings.HasPrefix(line, marker) {
				line = strings.TrimSpace(strings.TrimPrefix(line, marker))
				break
			}
		}
		line = strings.TrimLeft(line, "-*•·")
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// Bullets returns every bullet across all positions in resume order.
func (r *ResumeData) Bullets() []string {
	if r == nil {
		return nil
	}
	var all []string
	for _, p := range r.Experience {
		all = append(all, p.Bullets()...)
	}
	return all
}

// FullText concatenates the textual content of the resume. Raw extracted text wins
// when the parser supplied it.
func (r *ResumeData) FullText() string {
	if r == nil {
		return ""
	}
	if r.Metadata != nil && strings.TrimSpace(r.Metadata.RawText) != "" {
		return r.Metadata.RawText
	}

	var sb strings.Builder
	if r.Contact != nil && r.Contact.Name != "" {
		sb.WriteString(r.Contact.Name)
		sb.WriteString("\n")
	}
	for _, p := range r.Experience {
		if p.Title != "" || p.Company != "" {
			sb.WriteString(strings.TrimSpace(p.Title + " " + p.Company))
			sb.WriteString("\n")
		}
		if p.Description != "" {
			sb.WriteString(p.Description)
			sb.WriteString("\n")
		}
	}
	for _, e := range r.Education {
		sb.WriteString(strings.TrimSpace(e.Degree + " " + e.Field + " " + e.Institution))
		sb.WriteString("\n")
	}
	if len(r.Skills) > 0 {
		sb.WriteString(strings.Join(r.Skills, ", "))
		sb.WriteString("\n")
	}
	for _, c := range r.Certifications {
		sb.WriteString(c.Name)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// WordCount returns the metadata word count, falling back to counting words in FullText.
func (r *ResumeData) WordCount() int {
	if r == nil {
		return 0
	}
	if r.Metadata != nil && r.Metadata.WordCount > 0 {
		return r.Metadata.WordCount
	}
	return len(strings.Fields(r.FullText()))
}
