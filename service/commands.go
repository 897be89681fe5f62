package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lumina/app/repositories"

	"github.com/dgraph-io/badger/v4"
)

var errCancelled = errors.New("operation cancelled")

// DBTool maintains the embedded badger store kept in Dir.
type DBTool struct {
	Dir string
	In  io.Reader
	Out io.Writer
}

// Run dispatches args[0] and reports the outcome on Out.
func (t *DBTool) Run(args []string) int {
	if len(args) == 0 {
		t.printHelp()
		return 1
	}

	var err error
	switch args[0] {
	case "help":
		t.printHelp()
		return 0
	case "init":
		err = t.Init()
	case "clean":
		err = t.Clean()
	case "count":
		var n int64
		if n, err = t.Count(); err == nil {
			fmt.Fprintf(t.Out, "%d posts\n", n)
		}
	case "backup":
		var out string
		if len(args) > 1 {
			out = args[1]
		}
		if out, err = t.Backup(out); err == nil {
			fmt.Fprintf(t.Out, "Backup written to %s\n", out)
		}
	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(t.Out, "Error: restore needs a backup file")
			return 1
		}
		err = t.Restore(args[1])
	default:
		fmt.Fprintf(t.Out, "Unknown db command: %s\n\n", args[0])
		t.printHelp()
		return 1
	}

	switch {
	case errors.Is(err, errCancelled):
		fmt.Fprintln(t.Out, "Operation cancelled")
		return 1
	case err != nil:
		fmt.Fprintf(t.Out, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(t.Out, "Done")
	return 0
}

func (t *DBTool) printHelp() {
	fmt.Fprint(t.Out, `Usage: lumina db <command>

Commands operate on the embedded store in DATA_DIR (serve it with STORE_URL=badger://<DATA_DIR>).

Commands:
  init              Create the store and seed the example post
  clean             Delete the store
  count             Print the number of stored posts
  backup [file]     Write a backup (default: <DATA_DIR>/../backups)
  restore <file>    Replace the store with a backup
  help              Display this help message
`)
}

func (t *DBTool) exists() bool {
	_, err := os.Stat(t.Dir)
	return err == nil
}

// confirm asks a yes/no question on Out and reads the answer from In.
func (t *DBTool) confirm(question string) error {
	fmt.Fprintf(t.Out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(t.In).ReadString('\n')
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		return nil
	}
	return errCancelled
}

// Init creates the store and seeds it with the example post.
func (t *DBTool) Init() error {
	if t.exists() {
		return fmt.Errorf("store already exists in %s, run clean first", t.Dir)
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	repo, err := repositories.OpenBadger(t.Dir)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Create(context.Background(), repositories.SeedPost()); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	return nil
}

// Clean deletes the store after confirmation.
func (t *DBTool) Clean() error {
	if !t.exists() {
		fmt.Fprintln(t.Out, "Store does not exist, nothing to clean")
		return nil
	}
	if err := t.confirm("Delete the store? This cannot be undone."); err != nil {
		return err
	}
	return os.RemoveAll(t.Dir)
}

// Count returns the number of stored posts.
func (t *DBTool) Count() (int64, error) {
	if !t.exists() {
		return 0, fmt.Errorf("no store in %s", t.Dir)
	}
	repo, err := repositories.OpenBadger(t.Dir)
	if err != nil {
		return 0, err
	}
	defer repo.Close()
	return repo.Count(context.Background())
}

// Backup writes a full backup to out, or to a timestamped file in a
// backups directory next to the store when out is empty. It returns the
// path written.
func (t *DBTool) Backup(out string) (string, error) {
	if !t.exists() {
		return "", fmt.Errorf("no store in %s", t.Dir)
	}
	if out == "" {
		out = filepath.Join(filepath.Dir(t.Dir), "backups", fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	db, err := openDB(t.Dir)
	if err != nil {
		return "", err
	}
	defer db.Close()

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return out, nil
}

// Restore replaces the store with the contents of backupFile, asking
// before an existing store is removed.
func (t *DBTool) Restore(backupFile string) error {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file %s is empty", backupFile)
	}

	if t.exists() {
		if err := t.confirm("Replace the existing store?"); err != nil {
			return err
		}
		if err := os.RemoveAll(t.Dir); err != nil {
			return fmt.Errorf("remove existing store: %w", err)
		}
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	db, err := openDB(t.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	return load(db, f)
}

// load recovers from panics badger raises on corrupt input.
func load(db *badger.DB, r io.Reader) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("restore panicked: %v", rec)
		}
	}()
	if err := db.Load(r, 4); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

func openDB(dir string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}
