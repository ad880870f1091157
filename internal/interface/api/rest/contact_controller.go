package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"contacts-api/internal/application/ports"
	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/interface/api/rest/dto/contact"
	"contacts-api/internal/interface/api/rest/middleware"
	"contacts-api/internal/interface/api/rest/validator"
)

type ContactController struct {
	contactService ports.ContactService
	logger         *zap.Logger
}

func NewContactController(
	r *gin.Engine,
	contactService ports.ContactService,
	logger *zap.Logger,
	identity ports.IdentityResolver,
	limiter ports.RateLimiter,
	mCounter *prometheus.CounterVec,
) *ContactController {
	cc := &ContactController{
		contactService: contactService,
		logger:         logger,
	}

	g := r.Group(RouteContacts,
		middleware.RateLimitMiddleware(limiter, logger, mCounter),
		middleware.AuthMiddleware(identity),
	)

	g.GET("", cc.GetContactsHandler)
	g.POST("", cc.CreateContactHandler)
	g.GET(RouteSearchFirstName, cc.SearchByFirstNameHandler)
	g.GET(RouteSearchLastName, cc.SearchByLastNameHandler)
	g.GET(RouteSearchEmail, cc.SearchByEmailHandler)
	g.GET(RouteSearchBirthdays, cc.UpcomingBirthdaysHandler)
	g.GET(RouteContact, cc.GetContactHandler)
	g.PUT(RouteContact, cc.UpdateContactHandler)
	g.DELETE(RouteContact, cc.DeleteContactHandler)

	return cc
}

func (cc *ContactController) GetContactsHandler(c *gin.Context) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}

	skip, limit, err := validator.ValidatePaging(c.Query("skip"), c.Query("limit"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	cs, err := cc.contactService.FindContacts(c.Request.Context(), userID, skip, limit)
	if err != nil {
		cc.storeFailure(c, "FindContacts", "failed to get contacts", err)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContacts(cs))
}

func (cc *ContactController) GetContactHandler(c *gin.Context) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}
	id, ok := cc.contactID(c)
	if !ok {
		return
	}

	ct, err := cc.contactService.FindContactByID(c.Request.Context(), userID, id)
	if err != nil {
		cc.storeFailure(c, "FindContactByID", "failed to get a contact", err)
		return
	}

	if ct == nil {
		contactNotFound(c)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContact(*ct))
}

func (cc *ContactController) SearchByFirstNameHandler(c *gin.Context) {
	cc.search(c, "first_name", "FindByFirstName", cc.contactService.FindByFirstName)
}

func (cc *ContactController) SearchByLastNameHandler(c *gin.Context) {
	cc.search(c, "last_name", "FindByLastName", cc.contactService.FindByLastName)
}

func (cc *ContactController) SearchByEmailHandler(c *gin.Context) {
	cc.search(c, "email", "FindByEmail", cc.contactService.FindByEmail)
}

type searchFunc func(ctx context.Context, userID user.ID, part string) (domain.Contacts, error)

func (cc *ContactController) search(c *gin.Context, param, op string, find searchFunc) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}

	raw, ok := c.GetQuery(param)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": param + " query parameter is required"},
		)
		return
	}
	term, err := validator.SearchTerm(raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": param + " " + err.Error()},
		)
		return
	}

	cs, err := find(c.Request.Context(), userID, term)
	if err != nil {
		cc.storeFailure(c, op, "failed to search contacts", err)
		return
	}

	if len(cs) == 0 {
		contactNotFound(c)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContacts(cs))
}

func (cc *ContactController) UpcomingBirthdaysHandler(c *gin.Context) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}

	cs, err := cc.contactService.FindUpcomingBirthdays(c.Request.Context(), userID)
	if err != nil {
		cc.storeFailure(c, "FindUpcomingBirthdays", "failed to get upcoming birthdays", err)
		return
	}

	if len(cs) == 0 {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "contacts not found"},
		)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContacts(cs))
}

func (cc *ContactController) CreateContactHandler(c *gin.Context) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}
	ct, ok := cc.bindContact(c)
	if !ok {
		return
	}

	created, err := cc.contactService.CreateContact(c.Request.Context(), userID, ct)
	if err != nil {
		cc.writeFailure(c, "CreateContact", "failed to create a contact", err)
		return
	}

	c.JSON(http.StatusCreated, contact.ToResponseContact(*created))
}

func (cc *ContactController) UpdateContactHandler(c *gin.Context) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}
	id, ok := cc.contactID(c)
	if !ok {
		return
	}
	ct, ok := cc.bindContact(c)
	if !ok {
		return
	}

	updated, err := cc.contactService.UpdateContact(c.Request.Context(), userID, id, ct)
	if err != nil {
		cc.writeFailure(c, "UpdateContact", "failed to update a contact", err)
		return
	}

	if updated == nil {
		contactNotFound(c)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContact(*updated))
}

func (cc *ContactController) DeleteContactHandler(c *gin.Context) {
	userID, ok := cc.userID(c)
	if !ok {
		return
	}
	id, ok := cc.contactID(c)
	if !ok {
		return
	}

	deleted, err := cc.contactService.DeleteContact(c.Request.Context(), userID, id)
	if err != nil {
		cc.storeFailure(c, "DeleteContact", "failed to delete a contact", err)
		return
	}

	if deleted == nil {
		contactNotFound(c)
		return
	}

	c.JSON(http.StatusOK, contact.ToResponseContact(*deleted))
}

func (cc *ContactController) userID(c *gin.Context) (user.ID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token"},
		)
		return 0, false
	}
	return id, true
}

func (cc *ContactController) contactID(c *gin.Context) (domain.ID, bool) {
	id, ok := validator.ParseContactID(c.Param("contact_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "contact_id must be a positive integer"},
		)
		return 0, false
	}
	return id, true
}

func (cc *ContactController) bindContact(c *gin.Context) (domain.Contact, bool) {
	var req contact.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var details any = err.Error()
		if errs := validator.BindErrors(err); errs != nil {
			details = errs
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": details,
		})
		return domain.Contact{}, false
	}
	if errs := validator.ValidateContact(req, time.Now()); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return domain.Contact{}, false
	}

	ct, err := contact.ToDomainContact(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return domain.Contact{}, false
	}

	return ct, true
}

// writeFailure is storeFailure for create and update, where the store can
// reject values that passed validation.
func (cc *ContactController) writeFailure(c *gin.Context, op, msg string, err error) {
	if errors.Is(err, domain.ErrInvalidContact) {
		cc.logger.Warn(op+"() rejected", zap.Error(err))
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid contact data"},
		)
		return
	}
	cc.storeFailure(c, op, msg, err)
}

func (cc *ContactController) storeFailure(c *gin.Context, op, msg string, err error) {
	_ = c.Error(err)
	c.JSON(
		http.StatusInternalServerError,
		gin.H{"error": msg},
	)
	cc.logger.Error(op+"() error", zap.Error(err))
}

func contactNotFound(c *gin.Context) {
	c.JSON(
		http.StatusNotFound,
		gin.H{"error": "contact not found"},
	)
}
