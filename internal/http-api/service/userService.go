package service

import (
	"errors"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/repository"
	"cinehub/internal/http-api/roles"

	"gorm.io/gorm"
)

var (
	ErrNameInUse   = errors.New("username already in use")
	ErrEmailInUse  = errors.New("email already in use")
	ErrInvalidRole = errors.New("invalid role")
)

type UserService interface {
	// Create is the admin path: role may be assigned directly and the
	// account starts active (no confirmation flow).
	Create(d dto.CreateUserDTO) (*dto.UserResponse, error)
	GetByUsername(username string) (*dto.UserResponse, error)
	// Update is the admin path: role changes are applied when valid.
	Update(username string, d dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(username string) error
	List(search string, page, pageSize int) (*dto.PaginatedUserResponse, error)

	GetProfile(userID string) (*dto.UserResponse, error)
	// UpdateProfile is the self-service path: any attempted role change is
	// silently dropped before applying, never rejected.
	UpdateProfile(userID string, d dto.UpdateUserDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(d dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := ValidateUsername(d.Username); err != nil {
		return nil, err
	}

	role := d.Role
	if role == "" {
		role = string(roles.User)
	}
	if !roles.Valid(roles.Role(role)) || role == string(roles.Anonymous) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(d.Username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(d.Email); err == nil {
		return nil, ErrEmailInUse
	}

	user := &models.User{
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
		Role:      role,
		Active:    true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) GetByUsername(username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(username string, d dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if d.Role != nil {
		r := roles.Role(*d.Role)
		if !roles.Valid(r) || r == roles.Anonymous {
			return nil, ErrInvalidRole
		}
	}
	if d.Email != nil && *d.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*d.Email); err == nil {
			return nil, ErrEmailInUse
		}
	}

	d.ApplyTo(user)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Delete(username string) error {
	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) List(search string, page, pageSize int) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}

	return &dto.PaginatedUserResponse{
		Data:       responses,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) UpdateProfile(userID string, d dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// the account holder never changes their own role
	d.Role = nil

	if d.Email != nil && *d.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*d.Email); err == nil {
			return nil, ErrEmailInUse
		}
	}

	d.ApplyTo(user)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}
