package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/telekom/exmailer/pkg/metrics"
)

// MaxAttachmentSize is the largest file accepted as an attachment.
const MaxAttachmentSize = 25 * 1024 * 1024

const defaultContentType = "application/octet-stream"

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".zip":  "application/zip",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".rtf":  "application/rtf",
	".msg":  "application/vnd.ms-outlook",
}

// ContentType returns the MIME type for filename, falling back to
// application/octet-stream.
func ContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return defaultContentType
}

// Attachment is a file read into memory for sending.
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// Reasons an attachment is skipped.
const (
	SkipMissing    = "missing"
	SkipDirectory  = "directory"
	SkipEmpty      = "empty"
	SkipOversized  = "oversized"
	SkipUnreadable = "unreadable"
)

// PrepareAttachments reads every usable file in paths. Files that are
// missing, empty, directories, larger than MaxAttachmentSize or unreadable
// are reported in skipped instead of failing the whole message.
func PrepareAttachments(paths []string) (attached []Attachment, skipped []*AttachmentError) {
	for _, p := range paths {
		att, err := prepareAttachment(p)
		if err != nil {
			metrics.MailAttachmentsSkipped.WithLabelValues(err.Reason).Inc()
			skipped = append(skipped, err)
			continue
		}
		metrics.MailAttachmentBytes.Add(float64(len(att.Content)))
		attached = append(attached, att)
	}
	return attached, skipped
}

func prepareAttachment(p string) (Attachment, *AttachmentError) {
	resolved, err := expandPath(p)
	if err != nil {
		return Attachment{}, &AttachmentError{Path: p, Reason: SkipUnreadable, Err: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return Attachment{}, &AttachmentError{Path: resolved, Reason: SkipMissing}
		}
		return Attachment{}, &AttachmentError{Path: resolved, Reason: SkipUnreadable, Err: err}
	}
	switch {
	case info.IsDir():
		return Attachment{}, &AttachmentError{Path: resolved, Reason: SkipDirectory}
	case info.Size() == 0:
		return Attachment{}, &AttachmentError{Path: resolved, Reason: SkipEmpty}
	case info.Size() > MaxAttachmentSize:
		return Attachment{}, &AttachmentError{
			Path:   resolved,
			Reason: SkipOversized,
			Err:    fmt.Errorf("%.1fMB exceeds the %dMB limit", float64(info.Size())/1024/1024, MaxAttachmentSize/1024/1024),
		}
	}
	content, err := os.ReadFile(resolved)
	if err != nil {
		return Attachment{}, &AttachmentError{Path: resolved, Reason: SkipUnreadable, Err: err}
	}
	name := filepath.Base(resolved)
	return Attachment{Name: name, ContentType: ContentType(name), Content: content}, nil
}

func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}
