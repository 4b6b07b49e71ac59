package dto

import (
	"strings"

	"gorm.io/datatypes"

	resourceModel "eduhub_backend/internals/features/resources/resource/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateResourceRequest — metadata yang menyertai file upload (multipart form)
type CreateResourceRequest struct {
	Title       string `form:"title" validate:"required,min=3,max=200"`
	Subject     string `form:"subject" validate:"required,min=2,max=100"`
	Semester    int    `form:"semester" validate:"required,min=1,max=14"`
	Type        string `form:"resource_type" validate:"required,max=30"`
	Year        *int   `form:"year" validate:"omitempty,min=1990,max=2100"`
	Description string `form:"description"`
	Tags        string `form:"tags"` // comma-separated
	Privacy     string `form:"privacy" validate:"omitempty,oneof=public private"`
}

// Normalize — trim & normalisasi dasar
func (r *CreateResourceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Type = strings.TrimSpace(strings.ToLower(r.Type))
	r.Privacy = strings.TrimSpace(strings.ToLower(r.Privacy))
	if r.Privacy == "" {
		r.Privacy = resourceModel.PrivacyPublic
	}
}

func (r *CreateResourceRequest) TagList() datatypes.JSONSlice[string] {
	var out []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return datatypes.NewJSONSlice(out)
}

// UpdateResourceRequest — partial update (pointer agar bisa bedakan omit vs kosong).
// Field rating/likes sengaja tidak ada di sini — tidak bisa diubah lewat path ini.
type UpdateResourceRequest struct {
	Title       *string `form:"title" json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Subject     *string `form:"subject" json:"subject,omitempty" validate:"omitempty,min=2,max=100"`
	Semester    *int    `form:"semester" json:"semester,omitempty" validate:"omitempty,min=1,max=14"`
	Type        *string `form:"resource_type" json:"resource_type,omitempty" validate:"omitempty,max=30"`
	Year        *int    `form:"year" json:"year,omitempty" validate:"omitempty,min=1990,max=2100"`
	Description *string `form:"description" json:"description,omitempty"`
	Tags        *string `form:"tags" json:"tags,omitempty"` // comma-separated
	Privacy     *string `form:"privacy" json:"privacy,omitempty" validate:"omitempty,oneof=public private"`
}

// ToUpdates mengubah field yang terisi menjadi map kolom → nilai.
func (r *UpdateResourceRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["resource_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Subject != nil {
		updates["resource_subject"] = strings.TrimSpace(*r.Subject)
	}
	if r.Semester != nil {
		updates["resource_semester"] = *r.Semester
	}
	if r.Type != nil {
		updates["resource_type"] = strings.TrimSpace(strings.ToLower(*r.Type))
	}
	if r.Year != nil {
		updates["resource_year"] = *r.Year
	}
	if r.Description != nil {
		updates["resource_description"] = *r.Description
	}
	if r.Tags != nil {
		var out []string
		for _, t := range strings.Split(*r.Tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
		updates["resource_tags"] = datatypes.NewJSONSlice(out)
	}
	if r.Privacy != nil {
		updates["resource_privacy"] = strings.TrimSpace(strings.ToLower(*r.Privacy))
	}
	return updates
}

/* =======================================================
   LIST QUERY
   ======================================================= */

type ListResourceQuery struct {
	Search   string
	Semester int
	Type     string
	Privacy  string
	Offset   int
	Limit    int
}
