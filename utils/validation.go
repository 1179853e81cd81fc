// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	nikRegex   = regexp.MustCompile(`^\d{16}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRegex = regexp.MustCompile(`^\d+$`)
)

// SubmissionInput holds the raw citizen-entered fields before normalization.
type SubmissionInput struct {
	Nama         string `json:"nama"`
	NIK          string `json:"nik"`
	Email        string `json:"email"`
	NoWA         string `json:"no_wa"`
	JenisLayanan string `json:"jenis_layanan"`
	Consent      bool   `json:"consent"`
}

// ValidateSubmission checks every field independently and returns a map of
// field name to message for each failing field. All failures are reported
// together. The input is valid iff the map is empty.
func ValidateSubmission(input SubmissionInput) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(input.Nama) == "" {
		errors["nama"] = "Nama lengkap wajib diisi"
	}

	if strings.TrimSpace(input.NIK) == "" {
		errors["nik"] = "NIK wajib diisi"
	} else if !nikRegex.MatchString(input.NIK) {
		errors["nik"] = "NIK harus 16 digit angka"
	}

	if strings.TrimSpace(input.Email) == "" {
		errors["email"] = "Email wajib diisi"
	} else if !emailRegex.MatchString(input.Email) {
		errors["email"] = "Format email tidak valid"
	}

	if strings.TrimSpace(input.NoWA) == "" {
		errors["no_wa"] = "Nomor WhatsApp wajib diisi"
	} else if !digitRegex.MatchString(stripNonDigits(input.NoWA)) {
		errors["no_wa"] = "Nomor WhatsApp harus angka"
	}

	if strings.TrimSpace(input.JenisLayanan) == "" {
		errors["jenis_layanan"] = "Jenis layanan wajib dipilih"
	}

	if !input.Consent {
		errors["consent"] = "Anda harus menyetujui pemberian notifikasi"
	}

	return errors
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
