// Package ocr provides Optical Character Recognition (OCR) functionality using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) to extract
// text from rectified document images. Word boxes are reported in the pixel
// space of the recognized image; the export subsystem remaps them into PDF
// page coordinates.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Supported Languages
//
// The default language is English ("eng"). Other languages can be specified
// using their Tesseract language codes:
//   - "eng" - English
//   - "deu" - German
//   - "fra" - French
//   - "spa" - Spanish
//   - See Tesseract documentation for full list
//
// # Temporary Files
//
// Recognize creates a temporary PNG file for Tesseract processing. This
// file is automatically deleted after OCR completes.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing or invalid image files
//   - Unsupported language codes
//   - Tesseract initialization failures
//   - Temporary file I/O errors
//
// If bounding box extraction fails (e.g., Tesseract version mismatch),
// Recognize still returns the extracted text with an empty Words slice.
package ocr
