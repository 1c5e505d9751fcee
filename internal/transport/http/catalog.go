package rest

import (
	"net/http"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listCategories(c *gin.Context) {
	out, err := h.svc.Categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getCategory(c *gin.Context) {
	out, err := h.svc.Categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get category", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req domain.CreateCategoryRequest
	asset, err := readPayload(c, &req)
	if err != nil {
		h.fail(c, "create category", err)
		return
	}
	out, err := h.svc.Categories.Create(c.Request.Context(), &req, asset)
	if err != nil {
		h.fail(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// updateCategory — id берётся из пути, а не из тела.
func (h *Handler) updateCategory(c *gin.Context) {
	var req domain.UpdateCategoryRequest
	asset, err := readPayload(c, &req)
	if err != nil {
		h.fail(c, "update category", err)
		return
	}
	req.ID = c.Param("id")
	out, err := h.svc.Categories.Update(c.Request.Context(), &req, asset)
	if err != nil {
		h.fail(c, "update category", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.svc.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listJobs(c *gin.Context) {
	out, err := h.svc.Jobs.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list jobs", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) listJobsByCategory(c *gin.Context) {
	out, err := h.svc.Jobs.ListByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "list jobs by category", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// searchJobs — GET /jobs/search?needs=<ключевые слова через пробел>.
func (h *Handler) searchJobs(c *gin.Context) {
	out, err := h.svc.Jobs.Search(c.Request.Context(), c.Query("needs"))
	if err != nil {
		h.fail(c, "search jobs", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getJob(c *gin.Context) {
	out, err := h.svc.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get job", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createJob(c *gin.Context) {
	var req domain.CreateJobRequest
	asset, err := readPayload(c, &req)
	if err != nil {
		h.fail(c, "create job", err)
		return
	}
	out, err := h.svc.Jobs.Create(c.Request.Context(), &req, asset)
	if err != nil {
		h.fail(c, "create job", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// updateJob — 409, если та же работа сейчас обновляется другим запросом.
func (h *Handler) updateJob(c *gin.Context) {
	var req domain.UpdateJobRequest
	asset, err := readPayload(c, &req)
	if err != nil {
		h.fail(c, "update job", err)
		return
	}
	req.ID = c.Param("id")
	out, err := h.svc.Jobs.Update(c.Request.Context(), &req, asset)
	if err != nil {
		h.fail(c, "update job", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteJob(c *gin.Context) {
	if err := h.svc.Jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete job", err)
		return
	}
	c.Status(http.StatusNoContent)
}
