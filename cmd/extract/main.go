package main

import (
	"bufio"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/yourorg/noticefeed/internal/extract"
)

// Reads one notice title per stdin line and writes one JSON object per line
// with the derived fields. Blank lines are skipped.
func main() {
	ex := extract.New(nil)
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	for in.Scan() {
		title := strings.TrimSpace(in.Text())
		if title == "" {
			continue
		}
		fields := ex.Fields(title)
		if err := enc.Encode(map[string]any{
			"title":     title,
			"fields":    fields,
			"officetel": strings.Contains(title, "오피스텔"),
		}); err != nil {
			log.Fatalf("encode: %v", err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
}
