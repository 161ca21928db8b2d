package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diegocrew/kidtracker/internal/services"
)

var errPasswordsDiffer = errors.New("passwords do not match")

// PromptNewPassword asks twice for a password without echoing it and checks
// the strength policy.
func PromptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return confirmPassword(string(first), string(second))
}

func confirmPassword(first string, second string) (string, error) {
	if first != second {
		return "", errPasswordsDiffer
	}
	if err := services.ValidatePasswordStrength(first); err != nil {
		return "", err
	}
	return first, nil
}

func readSecretLine(reader io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
