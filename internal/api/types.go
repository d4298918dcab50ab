package api

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RecipeRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	CookTime     string `json:"cookTime"`
	Servings     string `json:"servings"`
	Difficulty   string `json:"difficulty"`
	Ingredients  string `json:"ingredients" binding:"required"`
	Instructions string `json:"instructions" binding:"required"`
}

// InteractionRequest carries a swipe decision. SuperLiked is accepted on
// the wire but reserved: it has no behavior distinct from Liked.
type InteractionRequest struct {
	Liked      bool `json:"liked"`
	SuperLiked bool `json:"superLiked"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profileImageUrl"`
}
