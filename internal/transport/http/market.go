package rest

import (
	"net/http"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listAdverts(c *gin.Context) {
	out, err := h.svc.Adverts.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list adverts", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getAdvert(c *gin.Context) {
	out, err := h.svc.Adverts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get advert", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// listAdvertsByUser — ?advertiser=EMPLOYEE|CUSTOMER, по умолчанию CUSTOMER.
func (h *Handler) listAdvertsByUser(c *gin.Context) {
	advertiser, err := domain.ParseAdvertiser(c.DefaultQuery("advertiser", string(domain.AdvertiserCustomer)))
	if err != nil {
		h.fail(c, "list adverts by user", err)
		return
	}
	out, err := h.svc.Adverts.ListByUser(c.Request.Context(), c.Param("id"), advertiser)
	if err != nil {
		h.fail(c, "list adverts by user", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createAdvert(c *gin.Context) {
	var req domain.CreateAdvertRequest
	asset, err := readPayload(c, &req)
	if err != nil {
		h.fail(c, "create advert", err)
		return
	}
	out, err := h.svc.Adverts.Create(c.Request.Context(), &req, asset)
	if err != nil {
		h.fail(c, "create advert", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) updateAdvert(c *gin.Context) {
	var req domain.UpdateAdvertRequest
	asset, err := readPayload(c, &req)
	if err != nil {
		h.fail(c, "update advert", err)
		return
	}
	req.ID = c.Param("id")
	out, err := h.svc.Adverts.Update(c.Request.Context(), &req, asset)
	if err != nil {
		h.fail(c, "update advert", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteAdvert(c *gin.Context) {
	if err := h.svc.Adverts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete advert", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listOffersByAdvert(c *gin.Context) {
	out, err := h.svc.Offers.ListByAdvert(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "list offers by advert", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) listOffersByUser(c *gin.Context) {
	out, err := h.svc.Offers.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "list offers by user", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getOffer(c *gin.Context) {
	out, err := h.svc.Offers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get offer", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) makeOffer(c *gin.Context) {
	var req domain.MakeOfferRequest
	if _, err := readPayload(c, &req); err != nil {
		h.fail(c, "make offer", err)
		return
	}
	out, err := h.svc.Offers.MakeOffer(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "make offer", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) updateOffer(c *gin.Context) {
	var req domain.UpdateOfferRequest
	if _, err := readPayload(c, &req); err != nil {
		h.fail(c, "update offer", err)
		return
	}
	req.ID = c.Param("id")
	out, err := h.svc.Offers.Update(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "update offer", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteOffer(c *gin.Context) {
	if err := h.svc.Offers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete offer", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listNotifications — limit по умолчанию 20, не больше 100.
func (h *Handler) listNotifications(c *gin.Context) {
	limit, offset, err := httpx.ParseLimitOffset(c, 20, 100)
	if err != nil {
		h.fail(c, "list notifications", err)
		return
	}
	out, err := h.svc.Notifications.ListByUser(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		h.fail(c, "list notifications", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type bindSessionRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// bindSession — 201 при новой привязке, 409, если токен уже занят.
func (h *Handler) bindSession(c *gin.Context) {
	var req bindSessionRequest
	if _, err := readPayload(c, &req); err != nil {
		h.fail(c, "bind session", err)
		return
	}
	ok, err := h.svc.Sessions.Bind(c.Request.Context(), req.Token, req.Username)
	if err != nil {
		h.fail(c, "bind session", err)
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "session token already bound"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": req.Token, "username": req.Username})
}
