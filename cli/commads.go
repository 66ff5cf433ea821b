package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/keyforge/keyforge/internal/session"
	"github.com/keyforge/keyforge/internal/vault"
)

// RunPassCommands drives the interactive "pass" sub-shell: a small
// letter-command loop over the vault's password records, keyed by
// site (not a synthetic numeric ID) for get/update/delete.
func RunPassCommands(sess *session.Session) {
	reader := bufio.NewReader(os.Stdin)
	var idMap map[int]string

	for {
		fmt.Println("\nCommands: a=add, l=list, s N=show, c N=copy, u N=update, d N=delete, q=quit")
		fmt.Print("> ")

		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "a":
			AddPasswordCLI(sess)
			idMap = nil
		case "l":
			idMap = handleList(sess)
		case "s", "c", "u", "d":
			if len(parts) < 2 {
				fmt.Println("Specify item number")
				continue
			}
			var num int
			fmt.Sscanf(parts[1], "%d", &num)
			site, ok := idMap[num]
			if !ok {
				fmt.Println("Invalid item number (run l first)")
				continue
			}
			switch cmd {
			case "s":
				handleShow(sess, site)
			case "c":
				handleCopy(sess, site)
			case "u":
				handleUpdate(sess, site, reader)
			case "d":
				handleDelete(sess, site)
			}
		case "q":
			fmt.Println("Exiting.")
			return
		default:
			fmt.Println("Unknown command")
		}
	}
}

func handleList(sess *session.Session) map[int]string {
	entries := sess.Store.ListPasswords()
	fmt.Println("Passwords:")
	idMap := make(map[int]string)
	for i, p := range entries {
		num := i + 1
		idMap[num] = p.Site
		fmt.Printf("%d) %s | %s\n", num, p.Site, p.Username)
	}
	return idMap
}

func handleShow(sess *session.Session, site string) {
	p, err := sess.Store.GetPassword(site)
	if err != nil {
		fmt.Println("Not found:", err)
		return
	}
	fmt.Printf("Site: %s\nUsername: %s\nPassword: %s\nNotes: %s\nTags: %s\n",
		p.Site, p.Username, p.Password, p.Notes, strings.Join(p.Tags, ", "))
}

func handleCopy(sess *session.Session, site string) {
	p, err := sess.Store.GetPassword(site)
	if err != nil {
		fmt.Println("Not found:", err)
		return
	}
	clipboard.WriteAll(p.Password)
	fmt.Println("Password copied to clipboard. Clearing in 30 seconds...")
	time.AfterFunc(30*time.Second, func() {
		clipboard.WriteAll("")
	})
}

func handleUpdate(sess *session.Session, site string, reader *bufio.Reader) {
	newPassword, err := ReadPasswordMasked("New password (blank to keep): ")
	if err != nil {
		fmt.Println("Error reading password:", err)
		return
	}
	patch := vault.PasswordPatch{}
	if len(newPassword) > 0 {
		s := string(newPassword)
		patch.Password = &s
	}
	if _, err := sess.Store.UpdatePassword(site, patch); err != nil {
		fmt.Println("Error updating:", err)
		return
	}
	fmt.Println("Updated.")
}

func handleDelete(sess *session.Session, site string) {
	if err := sess.Store.DeletePassword(site); err != nil {
		fmt.Println("Error deleting:", err)
		return
	}
	fmt.Println("Deleted.")
}
