package models

// AttachmentField names a multipart file part that may be linked to a record.
type AttachmentField string

const (
	// AttachmentResume is a PDF/DOC/DOCX document, at most 5 MiB.
	AttachmentResume AttachmentField = "resume"
	// AttachmentProfilePhoto is an image, at most 2 MiB.
	AttachmentProfilePhoto AttachmentField = "profilePhoto"
)

// AttachmentRef is the validated, stored result of an upload. Records keep
// only Key.
type AttachmentRef struct {
	Field       AttachmentField
	Key         string
	Size        int64
	ContentType string
}
