package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/config"
	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/repository"
	"github.com/iliyamo/campus-cinema/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and profile
// lookup. The student cache is optional; Me falls back to the repository
// on a miss.
type AuthHandler struct {
	Cfg      config.Config
	Students *repository.StudentRepo
	Cache    *cache.StudentCache
}

func NewAuthHandler(cfg config.Config, students *repository.StudentRepo, sc *cache.StudentCache) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Students: students, Cache: sc}
}

type registerReq struct {
	StudentNo string `json:"student_no"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type studentPart struct {
	ID        uint64 `json:"id"`
	StudentNo string `json:"student_no"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
type authResp struct {
	Student studentPart `json:"student"`
	Access  tokenPart   `json:"access"`
}

func studentView(s *model.Student) studentPart {
	return studentPart{ID: s.ID, StudentNo: s.StudentNo, FullName: s.FullName, Email: s.Email, Role: s.Role}
}

// Register creates a student account and returns an access token right
// away. Every self-registered account gets the STUDENT role; admins are
// provisioned out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.StudentNo = strings.TrimSpace(req.StudentNo)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.StudentNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_no/email/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Student{
		StudentNo:    req.StudentNo,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleStudent,
	}
	if err := h.Students.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email or student number already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create student failed"})
	}
	if h.Cache != nil {
		h.Cache.Put(*s)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, s.ID, s.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		Student: studentView(s),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Login verifies credentials and returns a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Students.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(s.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if h.Cache != nil {
		h.Cache.Put(*s)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, s.ID, s.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Student: studentView(s),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me returns the authenticated student's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := ActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.Cache != nil {
		if s, ok := h.Cache.Get(id); ok {
			return c.JSON(http.StatusOK, studentView(&s))
		}
	}
	s, err := h.Students.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if h.Cache != nil {
		h.Cache.Put(*s)
	}
	return c.JSON(http.StatusOK, studentView(s))
}
