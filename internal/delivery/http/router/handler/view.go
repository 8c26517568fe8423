package handler

import (
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
)

// The view types below are the JSON shapes returned to clients. They are
// mapped from entities here so the domain layer stays serialization-free.
// Dates render through util.DisplayTimeLayout.

type userView struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Age          *int      `json:"age,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	Status       string    `json:"status"`
	RegisterDate string    `json:"registerDate"`
}

func newUserView(u *entity.User) *userView {
	if u == nil {
		return nil
	}

	return &userView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Age:          u.Age,
		PhoneNumber:  u.PhoneNumber,
		Status:       string(u.Status),
		RegisterDate: util.FormatDisplayTime(u.RegisterDate),
	}
}

type authView struct {
	User         *userView `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

func newAuthView(out *usecase.AuthOutput) *authView {
	return &authView{
		User:         newUserView(out.User),
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}
}

type categoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newCategoryView(c *entity.Category) *categoryView {
	if c == nil {
		return nil
	}

	return &categoryView{ID: c.ID, Name: c.Name}
}

type photoView struct {
	ID       uuid.UUID `json:"id"`
	ImageKey string    `json:"imageKey"`
}

type ratingView struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Stars     int       `json:"stars"`
}

func newRatingView(r *entity.Rating) *ratingView {
	view := &ratingView{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Stars:     r.Stars,
	}
	if r.User != nil {
		view.UserName = r.User.FullName()
	}

	return view
}

type reviewView struct {
	ID             uuid.UUID     `json:"id"`
	ProductID      uuid.UUID     `json:"productId"`
	AuthorID       uuid.UUID     `json:"authorId"`
	AuthorName     string        `json:"authorName,omitempty"`
	Text           string        `json:"text"`
	ParentReviewID *uuid.UUID    `json:"parentReviewId,omitempty"`
	CreatedDate    string        `json:"createdDate"`
	Replies        []*reviewView `json:"replies,omitempty"`
}

func newReviewView(r *entity.Review) *reviewView {
	view := &reviewView{
		ID:             r.ID,
		ProductID:      r.ProductID,
		AuthorID:       r.AuthorID,
		Text:           r.Text,
		ParentReviewID: r.ParentReviewID,
		CreatedDate:    util.FormatDisplayTime(r.CreatedDate),
	}
	if r.Author != nil {
		view.AuthorName = r.Author.FullName()
	}

	return view
}

func newReviewThreadViews(threads []*usecase.ReviewThread) []*reviewView {
	views := make([]*reviewView, 0, len(threads))
	for _, t := range threads {
		view := newReviewView(t.Review)
		view.Replies = newReviewThreadViews(t.Replies)
		views = append(views, view)
	}

	return views
}

type productView struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	CategoryID    uuid.UUID     `json:"categoryId"`
	Category      *categoryView `json:"category,omitempty"`
	Text          string        `json:"text,omitempty"`
	Price         string        `json:"price"`
	Active        bool          `json:"active"`
	VideoKey      *string       `json:"videoKey,omitempty"`
	OwnerID       *uuid.UUID    `json:"ownerId,omitempty"`
	OwnerName     string        `json:"ownerName,omitempty"`
	AverageRating float64       `json:"averageRating"`
	RatingCount   int           `json:"ratingCount"`
	Created       string        `json:"created"`
	Photos        []photoView   `json:"photos,omitempty"`
	Reviews       []*reviewView `json:"reviews,omitempty"`
}

// newProductView maps a listing row: associations beyond ratings stay empty.
func newProductView(p *entity.Product) *productView {
	view := &productView{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		Category:      newCategoryView(p.Category),
		Text:          p.Text,
		Price:         p.Price.StringFixed(2),
		Active:        p.Active,
		VideoKey:      p.VideoKey,
		OwnerID:       p.OwnerID,
		AverageRating: p.AverageRating(),
		RatingCount:   len(p.Ratings),
		Created:       util.FormatDisplayTime(p.CreatedAt),
	}
	if p.Owner != nil {
		view.OwnerName = p.Owner.FullName()
	}

	return view
}

// newProductDetailView additionally renders photos and the flat review list.
func newProductDetailView(p *entity.Product) *productView {
	view := newProductView(p)
	for idx := range p.Photos {
		view.Photos = append(view.Photos, photoView{
			ID:       p.Photos[idx].ID,
			ImageKey: p.Photos[idx].ImageKey,
		})
	}
	for idx := range p.Reviews {
		view.Reviews = append(view.Reviews, newReviewView(&p.Reviews[idx]))
	}

	return view
}

func newProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}

	return views
}

type cartItemView struct {
	ID        uuid.UUID    `json:"id"`
	ProductID uuid.UUID    `json:"productId"`
	Product   *productView `json:"product,omitempty"`
	Quantity  int          `json:"quantity"`
	LineTotal string       `json:"lineTotal"`
}

type cartView struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"userId"`
	Items       []cartItemView `json:"items"`
	CreatedDate string         `json:"createdDate"`
	Subtotal    string         `json:"subtotal"`
	Discount    string         `json:"discount"`
	TotalPrice  string         `json:"totalPrice"`
}

func newCartView(out *usecase.CartOutput) *cartView {
	view := &cartView{
		ID:          out.Cart.ID,
		UserID:      out.Cart.UserID,
		Items:       make([]cartItemView, 0, len(out.Cart.Items)),
		CreatedDate: util.FormatDisplayTime(out.Cart.CreatedDate),
		Subtotal:    out.Subtotal.StringFixed(2),
		Discount:    out.Discount.String(),
		TotalPrice:  out.TotalPrice.StringFixed(2),
	}
	for idx := range out.Cart.Items {
		item := &out.Cart.Items[idx]
		itemView := cartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		}
		if item.Product != nil {
			itemView.Product = newProductView(item.Product)
		}
		view.Items = append(view.Items, itemView)
	}

	return view
}

type productListView struct {
	Products []*productView `json:"products"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}
