package httpserver

import (
	"net/http"
	"net/url"

	"phonebook/contact"
	"phonebook/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	errContactNotFound = errs.Errorf(errs.ENOTFOUND, "contact not found")
	errNumberNotFound  = errs.Errorf(errs.ENOTFOUND, "number not found")
	errMalformedBody   = errs.Errorf(errs.EINVALID, "malformed request body")
)

func (s *Server) RegisterContactRoutes(g *echo.Group) {
	g.GET("/types", s.handleListTypes)
	g.GET("/contacts", s.handleSearchContacts)
	g.POST("/contacts", s.handleAddContact)
	g.POST("/contacts/sort", s.handleSortContacts)
	g.PUT("/contacts/:id", s.handleRenameContact)
	g.DELETE("/contacts/:id", s.handleRemoveContact)
	g.GET("/contacts/:id/numbers", s.handleListNumbers)
	g.POST("/contacts/:id/numbers", s.handleAddNumber)
	g.PUT("/contacts/:id/numbers/:number", s.handleEditNumber)
	g.DELETE("/contacts/:id/numbers/:number", s.handleRemoveNumber)
}

// handleListTypes godoc
// @Summary List phone types
// @Tags contacts
// @Success 200 {object} APIResponse
// @Router /api/types [get]
func (s *Server) handleListTypes(c echo.Context) error {
	types := make([]string, 0, len(contact.Types()))
	for _, t := range contact.Types() {
		types = append(types, string(t))
	}
	return writeList(c, http.StatusOK, types)
}

// handleSearchContacts godoc
// @Summary Search contacts
// @Description Contacts whose name contains q ignoring case, or with a number containing q. Empty q lists the whole book.
// @Tags contacts
// @Param q query string false "search query"
// @Success 200 {object} APIResponse
// @Router /api/contacts [get]
func (s *Server) handleSearchContacts(c echo.Context) error {
	found := s.BookService.Search(c.QueryParam("q"))
	return writeList(c, http.StatusOK, toContactResponses(found))
}

// handleAddContact godoc
// @Summary Add contact
// @Tags contacts
// @Param body body AddContactRequest true "contact"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/contacts [post]
func (s *Server) handleAddContact(c echo.Context) error {
	var req AddContactRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	added, err := s.BookService.AddContact(c.Request().Context(), req.Name)
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusCreated, toContactResponse(added), err)
}

// handleRenameContact godoc
// @Summary Rename contact
// @Tags contacts
// @Param id path string true "contact id"
// @Param body body RenameContactRequest true "new name"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/contacts/{id} [put]
func (s *Server) handleRenameContact(c echo.Context) error {
	target, err := s.findContact(c)
	if err != nil {
		return err
	}
	var req RenameContactRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	err = s.BookService.RenameContact(c.Request().Context(), target, req.Name)
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusOK, toContactResponse(target), err)
}

// handleRemoveContact godoc
// @Summary Remove contact
// @Tags contacts
// @Param id path string true "contact id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/contacts/{id} [delete]
func (s *Server) handleRemoveContact(c echo.Context) error {
	target, err := s.findContact(c)
	if err != nil {
		return err
	}

	err = s.BookService.RemoveContact(c.Request().Context(), target)
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusOK, nil, err)
}

// handleSortContacts godoc
// @Summary Toggle sort order by name
// @Tags contacts
// @Success 200 {object} APIResponse
// @Router /api/contacts/sort [post]
func (s *Server) handleSortContacts(c echo.Context) error {
	state, err := s.BookService.Sort(c.Request().Context())
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusOK, map[string]interface{}{
		"order": state.String(),
		"data":  toContactResponses(s.BookService.Book().All()),
	}, err)
}

// handleListNumbers godoc
// @Summary List the numbers of a contact
// @Tags numbers
// @Param id path string true "contact id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/contacts/{id}/numbers [get]
func (s *Server) handleListNumbers(c echo.Context) error {
	target, err := s.findContact(c)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, toPhoneResponses(target.Phones))
}

// handleAddNumber godoc
// @Summary Add number
// @Tags numbers
// @Param id path string true "contact id"
// @Param body body NumberRequest true "number"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/contacts/{id}/numbers [post]
func (s *Server) handleAddNumber(c echo.Context) error {
	target, err := s.findContact(c)
	if err != nil {
		return err
	}
	var req NumberRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	added, err := s.BookService.AddNumber(c.Request().Context(), target, req.Number, req.PhoneType())
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusCreated, toPhoneResponse(added), err)
}

// handleEditNumber godoc
// @Summary Replace number
// @Description The new number is appended at the end of the contact's list.
// @Tags numbers
// @Param id path string true "contact id"
// @Param number path string true "current number"
// @Param body body NumberRequest true "new number"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/contacts/{id}/numbers/{number} [put]
func (s *Server) handleEditNumber(c echo.Context) error {
	target, old, err := s.findNumber(c)
	if err != nil {
		return err
	}
	var req NumberRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	edited, err := s.BookService.EditNumber(c.Request().Context(), target, old, req.Number, req.PhoneType())
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusOK, toPhoneResponse(edited), err)
}

// handleRemoveNumber godoc
// @Summary Remove number
// @Tags numbers
// @Param id path string true "contact id"
// @Param number path string true "number"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/contacts/{id}/numbers/{number} [delete]
func (s *Server) handleRemoveNumber(c echo.Context) error {
	target, p, err := s.findNumber(c)
	if err != nil {
		return err
	}

	err = s.BookService.RemoveNumber(c.Request().Context(), target, p)
	if failed(err) {
		return err
	}
	return s.writeMutation(c, http.StatusOK, nil, err)
}

func (s *Server) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errMalformedBody
	}
	return c.Validate(req)
}

func (s *Server) findContact(c echo.Context) (*contact.Contact, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, errContactNotFound
	}
	found := s.BookService.Book().FindByID(id)
	if found == nil {
		return nil, errContactNotFound
	}
	return found, nil
}

func (s *Server) findNumber(c echo.Context) (*contact.Contact, *contact.PhoneNumber, error) {
	owner, err := s.findContact(c)
	if err != nil {
		return nil, nil, err
	}
	number, err := url.PathUnescape(c.Param("number"))
	if err != nil {
		return nil, nil, errNumberNotFound
	}
	p := owner.FindNumber(number)
	if p == nil {
		return nil, nil, errNumberNotFound
	}
	return owner, p, nil
}
