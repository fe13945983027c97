package authsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nurkholifah99/campus-library-hub/model"
	studentrepo "github.com/nurkholifah99/campus-library-hub/repository/student"
	userrepo "github.com/nurkholifah99/campus-library-hub/repository/user"
	"github.com/nurkholifah99/campus-library-hub/util/hash"
	jwtutil "github.com/nurkholifah99/campus-library-hub/util/jwt"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrNIMTaken     = errors.New("nim already registered")
	ErrBadInput     = errors.New("bad input")
	ErrInvalidCreds = errors.New("invalid credentials")
)

const tokenTTLHours = 24

type Users interface {
	Create(u *model.User) error
	ByEmail(email string) (*model.User, error)
}

type Students interface {
	Add(st model.Student) error
	GetByNIM(nim string) (model.Student, error)
}

type Service interface {
	// Register creates the student directory entry and the auth account in
	// one go and returns a signed token.
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)

	// EnsureAdmin creates the bootstrap admin account if the email is still
	// free; a taken email is not an error so restarts stay quiet.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type service struct {
	users    Users
	students Students
	secret   string
}

func New(users Users, students Students, secret string) Service {
	return &service{users: users, students: students, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.NIM) == "" || len(req.Password) < 6 {
		return nil, "", ErrBadInput
	}
	if _, err := s.students.GetByNIM(req.NIM); err == nil {
		return nil, "", ErrNIMTaken
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	st := model.Student{
		ID:      uuid.NewString(),
		NIM:     req.NIM,
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Faculty: req.Faculty,
		Major:   req.Major,
	}

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         model.RoleStudent,
		StudentID:    st.ID,
	}
	if err := s.users.Create(u); err != nil {
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	if err := s.students.Add(st); err != nil {
		return nil, "", ErrNIMTaken
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, u.StudentID, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.users.ByEmail(req.Email)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, u.StudentID, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if _, err := s.users.ByEmail(email); err == nil {
		return nil
	}
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.Create(&model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
	})
}

var (
	_ Users    = (*userrepo.Store)(nil)
	_ Students = (*studentrepo.Store)(nil)
)
