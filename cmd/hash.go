package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtroode/sessiongate/internal/password"
)

func hashCmd() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "read a password from stdin and print its bcrypt hash",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt work factor",
				Value: password.MinCost,
			},
		},
		Action: hash,
	}
}

func hash(c *cli.Context) error {
	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read password: %w", err)
	}

	plaintext := strings.TrimRight(line, "\r\n")
	if plaintext == "" {
		return errors.New("password is empty")
	}
	if len(plaintext) > password.MaxLength {
		return fmt.Errorf("password must be at most %d bytes", password.MaxLength)
	}

	hasher, err := password.NewBcrypt(c.Int("cost"))
	if err != nil {
		return err
	}

	out, err := hasher.Hash(plaintext)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, out)
	return nil
}
