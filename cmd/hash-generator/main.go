// Command hash-generator prints bcrypt hashes for passwords, for seeding
// users directly into the database. Passwords come from the arguments or,
// when there are none, one per line from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		var err error
		if passwords, err = readLines(os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	if failed := hashPasswords(os.Stdout, auth.NewBcryptHasher(*cost), passwords); failed > 0 {
		os.Exit(1)
	}
}

// hashPasswords writes one "hash" line per password to w, and an error line
// for passwords the API would reject. It returns the number of failures.
func hashPasswords(w io.Writer, hasher auth.PasswordHasher, passwords []string) int {
	failed := 0
	for i, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			fmt.Fprintf(w, "#%d: error: %v\n", i+1, err)
			failed++
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(w, "#%d: error: %v\n", i+1, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "#%d: %s\n", i+1, hash)
	}
	return failed
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
