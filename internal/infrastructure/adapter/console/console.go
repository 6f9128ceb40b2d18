// Package console drives the bank through an interactive, line-oriented menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/usecase"
)

// historyDateLayout renders transaction dates as MM/DD/YYYY
const historyDateLayout = "01/02/2006"

type moveFunc func(ctx context.Context, user *entity.User, amountText string) (*usecase.TransactionResult, error)

// Console is a menu-driven front end reading commands from in and writing screens to out
type Console struct {
	bank     usecase.BankUseCase
	bankName string
	in       *bufio.Scanner
	out      io.Writer
}

// New creates a console for bank named bankName
func New(bank usecase.BankUseCase, bankName string, in io.Reader, out io.Writer) *Console {
	return &Console{
		bank:     bank,
		bankName: bankName,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run shows the start menu until the user exits or input ends.
// End of input is a normal exit.
func (c *Console) Run(ctx context.Context) error {
	err := c.startMenu(ctx)
	if errors.Is(err, io.EOF) {
		c.println()
		return nil
	}
	return err
}

func (c *Console) startMenu(ctx context.Context) error {
	invalid := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println()
		if invalid {
			c.println("Invalid entry. Please try again.")
		} else {
			c.println("Welcome to the " + c.bankName + "!")
		}
		c.println("Select an option below to get started.")
		c.println()
		c.println("  1.  Create an account")
		c.println("  2.  Login")
		c.println("  3.  Exit")

		choice, err := c.readLine()
		if err != nil {
			return err
		}

		invalid = false
		switch strings.TrimSpace(choice) {
		case "1":
			created, err := c.createAccount(ctx)
			if err != nil {
				return err
			}
			if created {
				if err := c.login(ctx); err != nil {
					return err
				}
			}
		case "2":
			if err := c.login(ctx); err != nil {
				return err
			}
		case "3":
			c.println("Thank you for visiting!")
			return nil
		default:
			invalid = true
		}
	}
}

// createAccount reports false when the user leaves the screen with a blank username
func (c *Console) createAccount(ctx context.Context) (bool, error) {
	failed := false
	for {
		c.println()
		if failed {
			c.println("Could not create an account. Please try again.")
		} else {
			c.println("Follow the prompts to create an account.")
		}
		failed = false

		username, err := c.promptNewUsername(ctx)
		if err != nil || username == "" {
			return false, err
		}

		password, err := c.promptNewPassword()
		if err != nil {
			return false, err
		}
		if password == "" {
			failed = true
			continue
		}

		firstName, err := c.promptName("first")
		if err != nil {
			return false, err
		}
		lastName, err := c.promptName("last")
		if err != nil {
			return false, err
		}

		_, err = c.bank.CreateAccount(ctx, usecase.CreateAccountRequest{
			Username:  username,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
		})
		if err != nil {
			failed = true
			continue
		}
		return true, nil
	}
}

// promptNewUsername returns "" when the user enters a blank line
func (c *Console) promptNewUsername(ctx context.Context) (string, error) {
	for {
		c.print("Username: ")
		line, err := c.readLine()
		if err != nil {
			return "", err
		}

		username := strings.ToLower(strings.TrimSpace(line))
		if username == "" {
			return "", nil
		}

		if err := c.bank.CheckUsername(ctx, username); err != nil {
			c.println(sentence(err))
			continue
		}
		return username, nil
	}
}

// promptNewPassword returns "" when the user enters a blank password
func (c *Console) promptNewPassword() (string, error) {
	minLength := c.bank.MinPasswordLength()
	for {
		c.print("Password: ")
		password, err := c.readLine()
		if err != nil || password == "" {
			return "", err
		}

		if utf8.RuneCountInString(password) < minLength {
			c.println(fmt.Sprintf("Your password must be at least %d characters.", minLength))
			continue
		}

		c.print("Confirm password: ")
		confirmation, err := c.readLine()
		if err != nil {
			return "", err
		}
		if confirmation != password {
			c.println("Your passwords do not match.")
			continue
		}
		return password, nil
	}
}

func (c *Console) promptName(kind string) (string, error) {
	for {
		c.print("Enter your " + kind + " name: ")
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
	}
}

// login returns to the start menu on a blank username or after logout
func (c *Console) login(ctx context.Context) error {
	invalid := false
	for {
		c.println()
		if invalid {
			c.println("Incorrect username or password. Please try again.")
		} else {
			c.println("Enter your username and password to log in.")
		}
		invalid = false

		c.print("Username: ")
		line, err := c.readLine()
		if err != nil {
			return err
		}
		username := strings.ToLower(strings.TrimSpace(line))
		if username == "" {
			return nil
		}

		c.print("Enter your password: ")
		password, err := c.readLine()
		if err != nil {
			return err
		}
		if password == "" {
			invalid = true
			continue
		}

		user, err := c.bank.Login(ctx, username, password)
		if err != nil {
			invalid = true
			continue
		}
		return c.accountMenu(ctx, user)
	}
}

func (c *Console) accountMenu(ctx context.Context, user *entity.User) error {
	invalid := false
	for {
		c.println()
		if invalid {
			c.println("Invalid entry. Please try again.")
		} else {
			c.println("Hello " + user.FullName() + ".")
		}
		c.println("Your account balance is $" + user.GetBalance() + ".")
		c.println("Select an option below.")
		c.println()
		c.println("  1.  Deposit")
		c.println("  2.  Withdraw")
		c.println("  3.  View transactions")
		c.println("  4.  Log out")

		choice, err := c.readLine()
		if err != nil {
			return err
		}

		invalid = false
		switch strings.TrimSpace(choice) {
		case "1":
			err = c.moveMoney(ctx, user, "deposit", c.bank.Deposit)
		case "2":
			err = c.moveMoney(ctx, user, "withdraw", c.bank.Withdraw)
		case "3":
			err = c.showTransactions(ctx, user)
		case "4":
			return nil
		default:
			invalid = true
		}
		if err != nil {
			return err
		}
	}
}

// moveMoney re-prompts until the bank accepts an amount
func (c *Console) moveMoney(ctx context.Context, user *entity.User, action string, fn moveFunc) error {
	c.println()
	for {
		c.println("Enter an amount to " + action + ": ")
		line, err := c.readLine()
		if err != nil {
			return err
		}

		result, err := fn(ctx, user, line)
		if err != nil {
			c.println(sentence(err))
			continue
		}

		c.println("Your new balance is $" + result.Balance + ". Press enter to continue.")
		_, err = c.readLine()
		return err
	}
}

func (c *Console) showTransactions(ctx context.Context, user *entity.User) error {
	statement := c.bank.GetStatement(ctx, user)

	c.println()
	if len(statement.Lines) == 0 {
		c.println("You have not made any transactions.")
	} else {
		c.println("Date, Description, Amount, Balance")
		for _, line := range statement.Lines {
			c.println(FormatHistoryLine(line))
		}
	}

	c.println()
	c.println("Press enter to continue.")
	_, err := c.readLine()
	return err
}

// FormatHistoryLine renders one entry as "MM/DD/YYYY, Description, Amount, Balance"
func FormatHistoryLine(line usecase.StatementLine) string {
	return strings.Join([]string{
		line.Date.Format(historyDateLayout),
		line.Description,
		line.Amount,
		line.Balance,
	}, ", ")
}

// sentence turns a domain error into a capitalized customer message
func sentence(err error) string {
	msg := domainerr.Message(err)
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:] + "."
}

// readLine returns io.EOF once input is exhausted
func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

func (c *Console) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) println(lines ...string) {
	_, _ = io.WriteString(c.out, strings.Join(lines, "")+"\n")
}
