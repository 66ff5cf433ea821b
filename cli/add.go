package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/keyforge/keyforge/internal/session"
	"github.com/keyforge/keyforge/internal/vault"
)

// AddPasswordCLI prompts interactively for a new Password record and
// saves it into sess.Store.
func AddPasswordCLI(sess *session.Session) {
	fmt.Print("\n--- Add Password ---\n")
	reader := bufio.NewReader(os.Stdin)

	site := ReadLine(reader, "Site: ")
	username := ReadLine(reader, "Username: ")

	secretBytes, err := ReadPasswordMasked("Password: ")
	if err != nil {
		fmt.Println("Error reading password:", err)
		return
	}
	notes := ReadLine(reader, "Notes (optional): ")
	tagsLine := ReadLine(reader, "Tags, comma-separated (optional): ")

	var tags []string
	if tagsLine != "" {
		for _, t := range strings.Split(tagsLine, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	p := vault.Password{
		Site:     site,
		Username: username,
		Password: string(secretBytes),
		Notes:    notes,
		Tags:     tags,
	}

	if _, err := sess.Store.AddPassword(p); err != nil {
		fmt.Println("Error adding password:", err)
		return
	}
	fmt.Println("Password added.")
}
