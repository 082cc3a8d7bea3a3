package pdftext

// MockExtractor is a canned-output implementation of Extractor for testing.
type MockExtractor struct {
	Pages map[string][]string
	Err   error
}

// ExtractPages returns the pages registered for the path.
func (m *MockExtractor) ExtractPages(filePath string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages[filePath], nil
}
