package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/guessr/internal/utils"
)

// maxWordlistBytes caps how much of a remote or local list is read.
const maxWordlistBytes = 8 << 20

// ParseWordlist reads one word per line. Lines are trimmed and normalized;
// blanks, repeats and lines that are not words (numbers, markup) are dropped.
func ParseWordlist(r io.Reader) ([]string, error) {
	seen := utils.NewSeenFilter()
	var words []string

	scanner := bufio.NewScanner(io.LimitReader(r, maxWordlistBytes))
	for scanner.Scan() {
		w := utils.NormalizeWord(scanner.Text())
		if !utils.IsValidWord(w) {
			if w != "" {
				log.Debugf("Skipping wordlist line %q", w)
			}
			continue
		}
		if !seen.ShouldInclude(w) {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return words, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return words, nil
}

// FetchWordlist downloads a line-delimited list. Any failure, including a
// non-2xx status, yields an empty list; it is logged, never returned.
func FetchWordlist(ctx context.Context, client *http.Client, url string) []string {
	if url == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warnf("Invalid wordlist URL %s: %v", url, err)
		return nil
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Warnf("Failed to fetch wordlist: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("Wordlist fetch returned %s", resp.Status)
		return nil
	}

	words, err := ParseWordlist(resp.Body)
	if err != nil {
		log.Warnf("Wordlist body truncated: %v", err)
	}
	log.Debugf("Fetched %d words from %s", len(words), url)
	return words
}

// LoadWordlistFile reads a local seed list. The file must be a non-empty
// .txt file.
func LoadWordlistFile(path string) ([]string, error) {
	if err := validateTextFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer file.Close()

	words, err := ParseWordlist(file)
	if err != nil {
		return nil, fmt.Errorf("wordlist %s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s", len(words), path)
	return words, nil
}

func validateTextFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() < 1 {
		return fmt.Errorf("file %s is empty", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".txt" {
		return fmt.Errorf("file %s has invalid extension %s (expected .txt)", path, ext)
	}
	return nil
}
