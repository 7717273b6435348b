package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/transport/dto"
)

// listFields may arrive as JSON text (multipart forms) instead of arrays.
var listFields = []string{"workExperience", "skills", "certifications", "locationPreferences"}

// DecodeApplicationPayload turns a raw submission into its canonical shape.
// Text-encoded list fields are decoded, strings are trimmed, empty list
// entries are dropped and skills are de-duplicated.
func DecodeApplicationPayload(raw map[string]any) (*dto.ApplicationPayload, error) {
	var payload dto.ApplicationPayload
	if err := decodeRaw(raw, &payload); err != nil {
		return nil, err
	}
	normalizePayload(&payload)
	return &payload, nil
}

// DecodeApplicationPatch is DecodeApplicationPayload for partial updates;
// fields absent from raw stay nil.
func DecodeApplicationPatch(raw map[string]any) (*dto.ApplicationPatch, error) {
	var patch dto.ApplicationPatch
	if err := decodeRaw(raw, &patch); err != nil {
		return nil, err
	}
	normalizePatch(&patch)
	return &patch, nil
}

func decodeRaw(raw map[string]any, dst any) error {
	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		normalized[k] = v
	}

	for _, field := range listFields {
		text, ok := normalized[field].(string)
		if !ok {
			continue
		}
		decoded, err := decodeListText(text)
		if err != nil {
			return newValidationError(field, "must be a JSON array: %v", err)
		}
		normalized[field] = decoded
	}

	if text, ok := normalized["graduationYear"].(string); ok {
		text = strings.TrimSpace(text)
		if text == "" {
			delete(normalized, "graduationYear")
		} else {
			year, err := strconv.Atoi(text)
			if err != nil {
				return newValidationError("graduationYear", "must be a whole number")
			}
			normalized["graduationYear"] = year
		}
	}

	body, err := json.Marshal(normalized)
	if err != nil {
		return newValidationError("", "unreadable payload: %v", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return newValidationError(typeErr.Field, "must be of type %s", typeErr.Type)
		}
		return newValidationError("", "malformed payload: %v", err)
	}
	return nil
}

func decodeListText(text string) ([]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []any{}, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case []any:
		return v, nil
	case nil:
		return []any{}, nil
	default:
		return nil, fmt.Errorf("got %T", decoded)
	}
}

func normalizePayload(p *dto.ApplicationPayload) {
	for _, s := range []*string{
		&p.FullName, &p.Email, &p.Phone, &p.Address, &p.LinkedIn, &p.GitHub, &p.Portfolio,
		&p.HighestQualification, &p.UniversityName, &p.GPA, &p.CoverLetter,
		&p.DesiredRole, &p.ExpectedSalary,
	} {
		*s = strings.TrimSpace(*s)
	}
	p.WorkExperience = cleanWorkExperience(p.WorkExperience)
	p.Skills = dedupe(cleanList(p.Skills))
	p.Certifications = cleanList(p.Certifications)
	p.LocationPreferences = cleanList(p.LocationPreferences)
}

func normalizePatch(p *dto.ApplicationPatch) {
	for _, s := range []*string{
		p.FullName, p.Email, p.Phone, p.Address, p.LinkedIn, p.GitHub, p.Portfolio,
		p.HighestQualification, p.UniversityName, p.GPA, p.CoverLetter,
		p.DesiredRole, p.ExpectedSalary,
	} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	if p.WorkExperience != nil {
		*p.WorkExperience = cleanWorkExperience(*p.WorkExperience)
	}
	if p.Skills != nil {
		*p.Skills = dedupe(cleanList(*p.Skills))
	}
	if p.Certifications != nil {
		*p.Certifications = cleanList(*p.Certifications)
	}
	if p.LocationPreferences != nil {
		*p.LocationPreferences = cleanList(*p.LocationPreferences)
	}
}

// cleanList trims entries and drops empty ones. An empty result is nil so
// that required checks reject it.
func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// cleanWorkExperience trims every entry and drops rows left completely blank.
func cleanWorkExperience(entries []models.WorkExperience) []models.WorkExperience {
	var out []models.WorkExperience
	for _, e := range entries {
		e.CompanyName = strings.TrimSpace(e.CompanyName)
		e.Role = strings.TrimSpace(e.Role)
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate = strings.TrimSpace(e.EndDate)
		e.Responsibilities = strings.TrimSpace(e.Responsibilities)
		if e.CompanyName == "" && e.Role == "" && e.StartDate == "" && e.EndDate == "" &&
			e.Responsibilities == "" && !e.CurrentlyWorking {
			continue
		}
		out = append(out, e)
	}
	return out
}
