package constants

import (
	"path/filepath"
	"strings"
)

// Batas ukuran upload (10 MiB), selaras dengan statement limit di gateway.
const MaxUploadSize = 10 * 1024 * 1024

// Ekstensi yang boleh diupload sebagai resource belajar.
var AllowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".ppt": {}, ".pptx": {},
	".xls": {}, ".xlsx": {},
	".txt": {}, ".md": {}, ".csv": {}, ".zip": {}, ".rar": {}, ".7z": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".webp": {},
	".mp4": {}, ".mp3": {}, ".wav": {},
	".py": {}, ".js": {}, ".html": {}, ".css": {}, ".json": {}, ".xml": {},
	".c": {}, ".cpp": {}, ".java": {},
}

func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := AllowedExtensions[ext]
	return ok
}

func FileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// DetectResourceTypeFromExt mengelompokkan file ke tipe kasar untuk filter UI.
func DetectResourceTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav":
		return "audio"
	case ".mp4":
		return "video"
	case ".doc", ".docx", ".txt", ".md":
		return "document"
	case ".pdf":
		return "pdf"
	case ".ppt", ".pptx":
		return "slides"
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return "image"
	case ".zip", ".rar", ".7z":
		return "archive"
	default:
		return "other"
	}
}
