package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/proshop/backend/app/helpers"
	"github.com/proshop/backend/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	productSvc *services.ProductService
	reviewSvc  *services.ReviewService
	render     *render.Render
	validator  *validator.Validate
	uploadDir  string
}

func NewProductHandler(productSvc *services.ProductService, reviewSvc *services.ReviewService, rnd *render.Render, v *validator.Validate, uploadDir string) *ProductHandler {
	return &ProductHandler{
		productSvc: productSvc,
		reviewSvc:  reviewSvc,
		render:     rnd,
		validator:  v,
		uploadDir:  uploadDir,
	}
}

type productUpdatePayload struct {
	Name         string          `json:"name" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	CountInStock int             `json:"countInStock"`
}

type reviewPayload struct {
	Rating  int    `json:"rating" validate:"min=0,max=5"`
	Comment string `json:"comment"`
}

// Products handles GET /api/products?keyword=&page=.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page := r.URL.Query().Get("page")

	result, err := h.productSvc.List(r.Context(), keyword, page)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, result)
}

// TopProducts handles GET /api/products/top.
func (h *ProductHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.TopProducts(r.Context())
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

// ProductDetail handles GET /api/products/{id}.
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productSvc.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products (admin). The product starts with
// placeholder values and is edited afterwards.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromRequest(r)

	product, err := h.productSvc.CreateSample(r.Context(), user.ID)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /api/products/{id} (admin).
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload productUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		detail(h.render, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"detail": "Validation failed", "errors": helpers.FormatValidationErrors(verrs)})
			return
		}
		detail(h.render, w, http.StatusBadRequest, "Validation failed")
		return
	}

	product, err := h.productSvc.Update(r.Context(), id, services.ProductUpdateInput{
		Name:         payload.Name,
		Price:        payload.Price,
		Brand:        payload.Brand,
		Category:     payload.Category,
		Description:  payload.Description,
		CountInStock: payload.CountInStock,
	})
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id} (admin).
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.productSvc.Delete(r.Context(), id); err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	detail(h.render, w, http.StatusOK, "Product deleted")
}

// CreateReview handles POST /api/products/{id}/reviews (authenticated).
func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user := helpers.UserFromRequest(r)

	var payload reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		detail(h.render, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"detail": "Validation failed", "errors": helpers.FormatValidationErrors(verrs)})
			return
		}
		detail(h.render, w, http.StatusBadRequest, "Validation failed")
		return
	}

	if err := h.reviewSvc.AddReview(r.Context(), user, id, payload.Rating, payload.Comment); err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	detail(h.render, w, http.StatusOK, "Review added")
}

// UploadImage handles POST /api/products/upload-image (admin). Stores the
// file under the upload dir and records its served path on the product.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		detail(h.render, w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	productID := r.FormValue("product_id")
	if productID == "" {
		detail(h.render, w, http.StatusBadRequest, "product_id is required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		detail(h.render, w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("UploadImage: failed to create upload dir %s: %v", h.uploadDir, err)
		detail(h.render, w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	filename := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		log.Printf("UploadImage: failed to create file: %v", err)
		detail(h.render, w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("UploadImage: failed to write file: %v", err)
		detail(h.render, w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	if err := h.productSvc.AttachImage(r.Context(), productID, "/images/"+filename); err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	detail(h.render, w, http.StatusOK, "Image was uploaded")
}
