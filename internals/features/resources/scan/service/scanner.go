package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Scanner adalah capability interface ke pemeriksa keamanan file eksternal.
// Verdict (clean, message) hanya valid kalau err == nil; error transport /
// timeout TIDAK boleh diperlakukan sebagai clean maupun unclean.
type Scanner interface {
	Scan(ctx context.Context, content []byte, filename string) (clean bool, message string, err error)
}

/* ===============================
   Simulated scanner
=================================*/

// SimulatedScanner selalu mengembalikan clean. Dipilih eksplisit lewat
// konfigurasi (SCAN_PROVIDER=simulated), bukan fallback diam-diam.
type SimulatedScanner struct{}

func (SimulatedScanner) Scan(_ context.Context, _ []byte, _ string) (bool, string, error) {
	return true, "File is clean (simulated scan)", nil
}

/* ===============================
   VirusTotal scanner
=================================*/

const (
	vtUploadURL    = "https://www.virustotal.com/api/v3/files"
	vtAnalysisURL  = "https://www.virustotal.com/api/v3/analyses/%s"
	vtPollAttempts = 12
	vtPollInterval = 5 * time.Second
)

type VirusTotalScanner struct {
	APIKey string
	Client *http.Client
}

func NewVirusTotalScanner(apiKey string) *VirusTotalScanner {
	return &VirusTotalScanner{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Scan mengupload file lalu polling hasil analisis, maksimal vtPollAttempts
// kali dengan jeda tetap. Lewat batas → error timeout, bukan blocking terus.
func (s *VirusTotalScanner) Scan(ctx context.Context, content []byte, filename string) (bool, string, error) {
	analysisID, err := s.upload(ctx, content, filename)
	if err != nil {
		return false, "", err
	}

	for i := 0; i < vtPollAttempts; i++ {
		select {
		case <-ctx.Done():
			return false, "", ctx.Err()
		case <-time.After(vtPollInterval):
		}

		status, stats, err := s.fetchAnalysis(ctx, analysisID)
		if err != nil {
			return false, "", err
		}
		if status != "completed" {
			continue
		}

		if stats.Malicious > 0 {
			return false, fmt.Sprintf("Virus detected by %d security engines", stats.Malicious), nil
		}
		if stats.Suspicious > 0 {
			return false, fmt.Sprintf("File suspicious (%d flags)", stats.Suspicious), nil
		}
		return true, "File is clean", nil
	}

	return false, "", fmt.Errorf("scan timed out after %d polls", vtPollAttempts)
}

func (s *VirusTotalScanner) upload(ctx context.Context, content []byte, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, vtUploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-apikey", s.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("virustotal upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("virustotal upload: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("virustotal upload: %w", err)
	}
	if out.Data.ID == "" {
		return "", fmt.Errorf("virustotal upload: empty analysis id")
	}
	return out.Data.ID, nil
}

type vtStats struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
}

func (s *VirusTotalScanner) fetchAnalysis(ctx context.Context, analysisID string) (string, vtStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(vtAnalysisURL, analysisID), nil)
	if err != nil {
		return "", vtStats{}, err
	}
	req.Header.Set("x-apikey", s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", vtStats{}, fmt.Errorf("virustotal analysis: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", vtStats{}, fmt.Errorf("virustotal analysis: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			Attributes struct {
				Status string  `json:"status"`
				Stats  vtStats `json:"stats"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", vtStats{}, fmt.Errorf("virustotal analysis: %w", err)
	}
	return out.Data.Attributes.Status, out.Data.Attributes.Stats, nil
}
