package blogapi

import "time"

// DTOs mirrored from the server responses. Flat records, no behavior; the
// client holds transient copies that are replaced wholesale on re-fetch.

// User is an account as returned by the user endpoints.
type User struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      int       `json:"role"`
}

// Category is an article category.
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Article is a blog post, optionally carrying its category and comments
// when the endpoint preloads them.
type Article struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Content   string    `json:"content"`
	Img       string    `json:"img"`
	Cid       uint      `json:"cid"`
	Category  *Category `json:"category,omitempty"`
	Comments  []Comment `json:"comments,omitempty"`
}

// Comment is a reader comment attached to an article.
type Comment struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Commentator string    `json:"commentator"`
	Content     string    `json:"content"`
	ArticleID   uint      `json:"articleId"`
}

// Profile is the current user's public profile.
type Profile struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	QQChat string `json:"qqchat"`
	WeChat string `json:"wechat"`
	Weibo  string `json:"weibo"`
	Email  string `json:"email"`
	Img    string `json:"img"`
	Avatar string `json:"avatar"`
}

// UploadResult carries the URL of an uploaded file. The URL is persisted
// verbatim into article/profile image fields.
type UploadResult struct {
	URL string `json:"url"`
}

// Request payloads. The validate tags mirror the server's binding rules so
// form input can be rejected before any network call.

type ReqLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ReqRegister struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=6,max=20"`
	Email    string `json:"email"    validate:"required,email"`
}

type ReqLoginByEmail struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=4"`
}

type ReqAddUser struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=6,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Role     int    `json:"role"     validate:"required,oneof=1 2"`
}

type ReqEditUser struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Role     int    `json:"role"     validate:"required,oneof=1 2"`
}

type ReqCategory struct {
	Name string `json:"name" validate:"required,min=2,max=20"`
}

type ReqArticle struct {
	Title   string `json:"title"   validate:"required,min=2,max=100"`
	Cid     uint   `json:"cid"     validate:"required,gte=1"`
	Desc    string `json:"desc"    validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Img     string `json:"img"     validate:"omitempty,url"`
}

type ReqAddComment struct {
	ArticleID uint   `json:"article_id" validate:"required,gte=1"`
	Content   string `json:"content"    validate:"required,max=500"`
}

type ReqUpdateProfile struct {
	Name   string `json:"name"   validate:"omitempty,max=50"`
	Desc   string `json:"desc"   validate:"omitempty,max=200"`
	WeChat string `json:"wechat" validate:"omitempty,max=50"`
	Weibo  string `json:"weibo"  validate:"omitempty,max=50"`
	Img    string `json:"img"    validate:"omitempty,url,max=255"`
	Avatar string `json:"avatar" validate:"omitempty,url,max=255"`
}

// UserForm is the modal form for the user admin page. The password is
// filled on create and left empty on edit; the server enforces its
// presence for new accounts.
type UserForm struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"omitempty,min=6,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Role     int    `json:"role"     validate:"required,oneof=1 2"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
