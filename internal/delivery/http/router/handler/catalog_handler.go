package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CatalogHandler holds dependencies for category, product and rating handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListCategories returns every category, ordered by name.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, newCategoryView(category))
	}

	return response.Success(c, http.StatusOK, views, "Categories retrieved successfully")
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=150"`
}

// CreateCategory creates a category with a unique name.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCategoryView(category), "Category created successfully")
}

// RenameCategory changes a category's name.
func (h *CatalogHandler) RenameCategory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.uc.RenameCategory(c.Request().Context(), id, req.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCategoryView(category), "Category renamed successfully")
}

// DeleteCategory removes a category and its products.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Category deleted"}, "Category deleted successfully")
}

type listProductsRequest struct {
	CategoryID *uuid.UUID `query:"categoryId"`
	ActiveOnly bool       `query:"activeOnly"`
	Page       int        `query:"page" validate:"omitempty,gte=1"`
	PageSize   int        `query:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

// ListProducts returns a filtered, paginated product listing.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var req listProductsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing parameters")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	output, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		CategoryID: req.CategoryID,
		ActiveOnly: req.ActiveOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	view := &productListView{
		Products: newProductViews(output.Products),
		Total:    output.Total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	return response.Success(c, http.StatusOK, view, "Products retrieved successfully")
}

// GetProduct returns one product with its photos, ratings and reviews.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductDetailView(product), "Product retrieved successfully")
}

type createProductRequest struct {
	Name       string    `json:"name" validate:"required,min=1,max=150"`
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
	Text       string    `json:"text"`
	Price      string    `json:"price" validate:"required"`
	Active     *bool     `json:"active"`
}

// CreateProduct creates a product owned by the calling user.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	price, err := parsePrice(c, req.Price)
	if err != nil {
		return err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Text:       req.Text,
		Price:      price,
		Active:     active,
		OwnerID:    &userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newProductView(product), "Product created successfully")
}

type updateProductRequest struct {
	Name       *string    `json:"name" validate:"omitempty,min=1,max=150"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Text       *string    `json:"text"`
	Price      *string    `json:"price"`
	Active     *bool      `json:"active"`
}

// UpdateProduct applies partial changes to a product.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := usecase.UpdateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Text:       req.Text,
		Active:     req.Active,
	}
	if req.Price != nil {
		price, err := parsePrice(c, *req.Price)
		if err != nil {
			return err
		}
		input.Price = &price
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductView(product), "Product updated successfully")
}

// DeleteProduct removes a product and everything attached to it.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted"}, "Product deleted successfully")
}

// AddProductPhoto accepts a multipart image upload under the "photo" field.
func (h *CatalogHandler) AddProductPhoto(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	upload, closeUpload, err := formUpload(c, "photo")
	if err != nil {
		return err
	}
	defer closeUpload()

	photo, err := h.uc.AddProductPhoto(c.Request().Context(), id, upload)
	if err != nil {
		return errors.WithStack(err)
	}

	view := photoView{ID: photo.ID, ImageKey: photo.ImageKey}

	return response.Success(c, http.StatusCreated, view, "Photo uploaded successfully")
}

// SetProductVideo accepts a multipart video upload under the "video" field,
// replacing any previous video.
func (h *CatalogHandler) SetProductVideo(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	upload, closeUpload, err := formUpload(c, "video")
	if err != nil {
		return err
	}
	defer closeUpload()

	product, err := h.uc.SetProductVideo(c.Request().Context(), id, upload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductView(product), "Video uploaded successfully")
}

type rateProductRequest struct {
	Stars int `json:"stars" validate:"required,gte=1,lte=5"`
}

// RateProduct records a star vote by the calling user.
func (h *CatalogHandler) RateProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req rateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	rating, err := h.uc.RateProduct(c.Request().Context(), usecase.RateProductInput{
		ProductID: id,
		UserID:    userID,
		Stars:     req.Stars,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newRatingView(rating), "Rating recorded successfully")
}

// ListProductRatings returns every star vote on a product.
func (h *CatalogHandler) ListProductRatings(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	ratings, err := h.uc.ListProductRatings(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*ratingView, 0, len(ratings))
	for _, rating := range ratings {
		views = append(views, newRatingView(rating))
	}

	return response.Success(c, http.StatusOK, views, "Ratings retrieved successfully")
}

// parsePrice parses a decimal price string and rejects negative values.
func parsePrice(c echo.Context, raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if price.IsNegative() {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	return price.Round(2), nil
}

// formUpload opens one multipart file field as a MediaUpload. The returned
// closer must run after the usecase has consumed the stream.
func formUpload(c echo.Context, field string) (usecase.MediaUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return usecase.MediaUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "missing "+field+" file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return usecase.MediaUpload{}, nil, errors.Wrap(err, "open multipart file")
	}

	upload := usecase.MediaUpload{
		FileName:    fileHeader.Filename,
		ContentType: detectContentType(fileHeader),
		Content:     src,
	}

	return upload, func() { src.Close() }, nil
}

func detectContentType(fileHeader *multipart.FileHeader) string {
	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}
