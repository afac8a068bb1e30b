package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/cache"
	"github.com/Kavi981/Nxt-Round/internal/middleware"
	"github.com/Kavi981/Nxt-Round/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 7 * 24 * time.Hour

// googleProfile is the subset of the Google userinfo response we consume.
type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleLogin handles GET /api/auth/google
// It sends the browser to Google's consent screen with a state nonce.
func (s *Server) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.New().String()
	if s.redis != nil {
		key := cache.OAuthStateKey(state)
		if err := s.redis.Set(c.Context(), key, "1", cache.OAuthStateTTL).Err(); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to store oauth state", "error", err)
		}
	}
	return c.Redirect(s.oauth.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/google/callback
// It exchanges the code, resolves the profile to a local account and sends
// the browser back to the client with a bearer token in the query string.
func (s *Server) GoogleCallback(c *fiber.Ctx) error {
	if errParam := c.Query("error"); errParam != "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Google sign-in was cancelled"))
	}

	code := c.Query("code")
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing authorization code"))
	}

	// The state nonce is single-use; without redis the check is skipped and
	// the exchange itself is the only protection.
	if s.redis != nil {
		state := c.Query("state")
		key := cache.OAuthStateKey(state)
		deleted, err := s.redis.Del(c.Context(), key).Result()
		if err == nil && (state == "" || deleted == 0) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired OAuth state"))
		}
	}

	token, err := s.oauth.Exchange(c.Context(), code)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization code exchange failed"))
	}

	profile, err := s.fetchGoogleProfile(c, token.AccessToken)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to fetch google profile", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user, created, err := s.userService.FindOrCreateFromGoogle(
		c.UserContext(), profile.ID, profile.Name, profile.Email, profile.Picture)
	if err != nil {
		return respondServiceError(c, err)
	}

	action := models.ActionLogin
	if created {
		action = models.ActionRegister
	}
	s.trackActivity(c, user.ID, action, models.TargetSystem, 0, "")

	jwtToken, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect(s.config.ClientURL+"/auth-callback?token="+jwtToken, fiber.StatusFound)
}

func (s *Server) fetchGoogleProfile(c *fiber.Ctx, accessToken string) (*googleProfile, error) {
	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo endpoint returned %d: %s", resp.StatusCode, body)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		// A valid token for a deleted account is still unauthorized.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("User not found"))
	}
	return c.JSON(user)
}

// Logout handles GET /api/auth/logout
// Tokens are stateless; the client discards its copy.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a JWT token for the given user ID
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": tokenIssuer,                            // Issuer
		"aud": tokenAudience,                          // Audience
		"exp": now.Add(tokenTTL).Unix(),               // Expiration (7 days)
		"iat": now.Unix(),                             // Issued at
		"nbf": now.Unix(),                             // Not before
		"jti": s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
