// Package console is the terminal front end of the phone book: a menu screen,
// a book screen driven by typed commands, and modal contact and number dialogs.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phonebook/contact"
	"phonebook/pkg/logger"

	"go.uber.org/zap"
)

type Option func(s *Shell)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Shell) {
		s.logger = l
	}
}

type Shell struct {
	svc    contact.Service
	p      *prompter
	out    io.Writer
	logger *zap.SugaredLogger

	query string
	view  []*contact.Contact
	stale bool
}

func New(svc contact.Service, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		svc:    svc,
		p:      newPrompter(in, out),
		out:    out,
		logger: logger.NOOPLogger,
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

// Run shows the menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, "")
		fmt.Fprintln(s.out, "Phone book")
		fmt.Fprintln(s.out, "  1) Open phone book")
		fmt.Fprintln(s.out, "  2) Exit")
		line, ok := s.p.ask("> ")
		if !ok {
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "open", "open phone book":
			if quit := s.bookScreen(ctx); quit {
				return nil
			}
		case "2", "exit":
			s.logger.Info("exiting")
			return nil
		case "":
		default:
			fmt.Fprintln(s.out, "Unknown action.")
		}
	}
}

// bookScreen loads the book and runs commands until back. It reports whether
// input ended.
func (s *Shell) bookScreen(ctx context.Context) bool {
	if err := s.svc.Open(ctx); err != nil {
		fmt.Fprintln(s.out, "Could not load the phone book, starting with an empty one.")
	}

	book := s.svc.Book()
	unsubscribe := book.Subscribe(func(contact.Event) { s.stale = true })
	defer unsubscribe()
	s.query = ""
	s.stale = true

	for {
		s.render()
		line, ok := s.p.ask("book> ")
		if !ok {
			return true
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
		case "back":
			book.Selection().Clear()
			return false
		case "help":
			s.help()
		case "select":
			s.selectContact(arg)
		case "phone":
			s.selectPhone(arg)
		case "search":
			if s.allowed(contact.OpSearch) {
				s.query = arg
				s.stale = true
			}
		case "sort":
			s.sort(ctx)
		case "add":
			s.addContact(ctx)
		case "edit":
			s.editContact(ctx)
		case "delete":
			s.removeContact(ctx)
		case "add-number":
			s.addNumber(ctx)
		case "edit-number":
			s.editNumber(ctx)
		case "delete-number":
			s.removeNumber(ctx)
		default:
			fmt.Fprintf(s.out, "Unknown command %q, type help.\n", cmd)
		}
		if s.p.eof {
			return true
		}
	}
}

func (s *Shell) help() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  select N        select contact N of the list")
	fmt.Fprintln(s.out, "  phone N         select number N of the selected contact")
	fmt.Fprintln(s.out, "  search [text]   filter by name or number, empty clears")
	fmt.Fprintln(s.out, "  add             add contact")
	fmt.Fprintln(s.out, "  edit            edit contact")
	fmt.Fprintln(s.out, "  delete          delete contact")
	fmt.Fprintln(s.out, "  add-number      add number")
	fmt.Fprintln(s.out, "  edit-number     edit number")
	fmt.Fprintln(s.out, "  delete-number   delete number")
	fmt.Fprintln(s.out, "  sort            sort by name, again to reverse")
	fmt.Fprintln(s.out, "  back            return to the menu")
}

func (s *Shell) render() {
	if s.stale {
		s.view = s.svc.Search(s.query)
		s.stale = false
	}
	sel := s.svc.Book().Selection()
	selected, _ := sel.Contact()
	_, selectedPhone, _ := sel.Phone()

	fmt.Fprintln(s.out, "")
	header := "Contacts"
	if s.query != "" {
		header += fmt.Sprintf(" matching %q", s.query)
	}
	fmt.Fprintln(s.out, header+":")
	if len(s.view) == 0 {
		fmt.Fprintln(s.out, "  (none)")
	}
	for i, c := range s.view {
		fmt.Fprintf(s.out, "%s%d. %s\n", marker(c == selected), i+1, c.Name)
	}

	if selected == nil {
		return
	}
	fmt.Fprintf(s.out, "Numbers of %s:\n", selected.Name)
	if len(selected.Phones) == 0 {
		fmt.Fprintln(s.out, "  (none)")
	}
	for i, p := range selected.Phones {
		fmt.Fprintf(s.out, "%s%d. %s\n", marker(p == selectedPhone), i+1, p)
	}
}

func marker(selected bool) string {
	if selected {
		return "* "
	}
	return "  "
}

func (s *Shell) selectContact(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.view) {
		fmt.Fprintln(s.out, "No such contact.")
		return
	}
	s.svc.Book().Selection().SelectContact(s.view[n-1])
}

func (s *Shell) selectPhone(arg string) {
	sel := s.svc.Book().Selection()
	c, err := sel.Contact()
	if err != nil {
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(c.Phones) {
		fmt.Fprintln(s.out, "No such number.")
		return
	}
	_ = sel.SelectPhone(c.Phones[n-1])
}

func (s *Shell) allowed(op contact.Operation) bool {
	return s.svc.Book().Selection().Allows(op)
}

func (s *Shell) sort(ctx context.Context) {
	if !s.allowed(contact.OpSort) {
		return
	}
	_, err := s.svc.Sort(ctx)
	s.report(err)
}

func (s *Shell) addContact(ctx context.Context) {
	if !s.allowed(contact.OpAddContact) {
		return
	}
	name, res := s.p.ContactDialog("Добавить контакт", "")
	if res == Cancelled {
		return
	}
	_, err := s.svc.AddContact(ctx, name)
	s.report(err)
}

func (s *Shell) editContact(ctx context.Context) {
	if !s.allowed(contact.OpEditContact) {
		return
	}
	c, err := s.svc.Book().Selection().Contact()
	if err != nil {
		return
	}
	name, res := s.p.ContactDialog("Изменить контакт", c.Name)
	if res == Cancelled {
		return
	}
	s.report(s.svc.RenameContact(ctx, c, name))
}

func (s *Shell) removeContact(ctx context.Context) {
	if !s.allowed(contact.OpRemoveContact) {
		return
	}
	c, err := s.svc.Book().Selection().Contact()
	if err != nil {
		return
	}
	s.report(s.svc.RemoveContact(ctx, c))
}

func (s *Shell) addNumber(ctx context.Context) {
	if !s.allowed(contact.OpAddNumber) {
		return
	}
	c, err := s.svc.Book().Selection().Contact()
	if err != nil {
		return
	}
	in, res := s.p.NumberDialog("Добавить номер", NumberInput{Type: contact.Mobile})
	if res == Cancelled {
		return
	}
	_, err = s.svc.AddNumber(ctx, c, in.Number, in.Type)
	s.report(err)
}

func (s *Shell) editNumber(ctx context.Context) {
	if !s.allowed(contact.OpEditNumber) {
		return
	}
	c, old, err := s.svc.Book().Selection().Phone()
	if err != nil {
		return
	}
	in, res := s.p.NumberDialog("Редактировать номер", NumberInput{Number: old.Number(), Type: old.Type()})
	if res == Cancelled {
		return
	}
	_, err = s.svc.EditNumber(ctx, c, old, in.Number, in.Type)
	s.report(err)
}

func (s *Shell) removeNumber(ctx context.Context) {
	if !s.allowed(contact.OpRemoveNumber) {
		return
	}
	c, p, err := s.svc.Book().Selection().Phone()
	if err != nil {
		return
	}
	s.report(s.svc.RemoveNumber(ctx, c, p))
}

// report shows a warning for rejected input and for changes that were kept
// in memory but not saved. A missing selection is ignored.
func (s *Shell) report(err error) {
	switch {
	case err == nil, errors.Is(err, contact.ErrNoSelection):
	case contact.IsValidation(err):
		header, text := warning(err)
		fmt.Fprintf(s.out, "Ошибка: %s. %s\n", header, text)
	case errors.Is(err, contact.ErrPersistenceFailed):
		fmt.Fprintln(s.out, "Ошибка: изменения не сохранены. Справочник изменён, но не записан на диск.")
	default:
		s.logger.Errorw("unexpected error", "error", err)
		fmt.Fprintf(s.out, "Ошибка: %v\n", err)
	}
}
