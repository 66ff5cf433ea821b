// Command keyforge is the terminal front end for the keyforge key
// factory and vault: password-derived master seed, deterministic
// SSH/GPG/wallet/TOTP generation, and an authenticated local password
// vault (spec §6's informative CLI surface).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keyforge/keyforge/cli"
	"github.com/keyforge/keyforge/internal/blobstore"
	"github.com/keyforge/keyforge/internal/session"
)

func main() {
	installSignalHandlers()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := dispatch(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func installSignalHandlers() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		switch <-sig {
		case syscall.SIGINT:
			os.Exit(130)
		case syscall.SIGTERM:
			os.Exit(143)
		}
	}()
}

func printUsage() {
	fmt.Println(`keyforge commands:
  init
  generate {ssh|gpg|bitcoin|ethereum} [name]
  vault {status|sync|list}
  pass {add|list|generate}
  totp <service>
  export {json|encrypted|backup} <path>
  import <path>
  interactive`)
}

func dispatch(cmd string, args []string) error {
	switch cmd {
	case "init":
		return cmdInit()
	case "generate":
		return cmdGenerate(args)
	case "vault":
		return cmdVault(args)
	case "pass":
		return cmdPass(args)
	case "totp":
		return cmdTOTP(args)
	case "export":
		return cmdExport(args)
	case "import":
		return cmdImport(args)
	case "interactive":
		return cmdInteractive()
	default:
		printUsage()
		os.Exit(1)
		return nil
	}
}

// openSession resolves the vault path, prompts for the master
// password, and opens a session.Session. session.Open / vault.New
// handle "no file yet" by starting from an empty vault, so there is
// no separate create-vs-open branch here.
func openSession() (*session.Session, error) {
	vaultPath, err := cli.VaultPath()
	if err != nil {
		return nil, err
	}

	prompt := "Master password: "
	if _, statErr := os.Stat(vaultPath); os.IsNotExist(statErr) {
		prompt = "Set master password: "
	}

	pw, err := cli.ReadPasswordMasked(prompt)
	if err != nil {
		return nil, err
	}

	sess, err := session.Open(vaultPath, pw, "")
	for i := range pw {
		pw[i] = 0
	}
	return sess, err
}

func cmdInit() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Store.Save(); err != nil {
		return err
	}
	fmt.Println("Vault initialised.")
	return nil
}

func cmdGenerate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: generate {ssh|gpg|bitcoin|ethereum} [name]")
	}
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	var name string
	if len(args) > 1 {
		name = args[1]
	}

	switch args[0] {
	case "ssh":
		return cli.GenerateSSH(sess, name)
	case "gpg":
		return cli.GenerateGPG(sess, name)
	case "bitcoin", "ethereum":
		return cli.GenerateWallet(sess, name)
	default:
		return fmt.Errorf("unknown generate kind %q", args[0])
	}
}

func cmdVault(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: vault {status|sync|list}")
	}
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	switch args[0] {
	case "status":
		return cli.VaultStatus(sess)
	case "sync":
		dir, err := cli.ConfigDir()
		if err != nil {
			return err
		}
		backend, err := blobstore.NewLocal(dir + "/backups")
		if err != nil {
			return err
		}
		sess.Store.SetBlobStore(backend)
		return cli.VaultSync(sess)
	case "list":
		cli.VaultList(sess)
		return nil
	default:
		return fmt.Errorf("unknown vault subcommand %q", args[0])
	}
}

func cmdPass(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: pass {add|list|generate}")
	}
	switch args[0] {
	case "generate":
		length := 20
		pw, err := cli.GeneratePassword(length)
		if err != nil {
			return err
		}
		fmt.Println(pw)
		return nil
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	switch args[0] {
	case "add":
		cli.AddPasswordCLI(sess)
		return nil
	case "list":
		cli.VaultList(sess)
		return nil
	default:
		return fmt.Errorf("unknown pass subcommand %q", args[0])
	}
}

func cmdTOTP(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: totp <service>")
	}
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	return cli.ShowTOTP(sess, args[0])
}

func cmdExport(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: export {json|encrypted|backup} <path>")
	}
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	return cli.ExportVault(sess, args[0], args[1])
}

func cmdImport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: import <path>")
	}
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	return cli.ImportVault(sess, args[0])
}

func cmdInteractive() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	cli.RunTUI(sess)
	return nil
}
