package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/db/repositories"
	"lostark-hub/partyfinder/internal/logging"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

const (
	discordAuthURL  = "https://discord.com/api/oauth2/authorize"
	discordTokenURL = "https://discord.com/api/oauth2/token"
	discordMeURL    = "https://discord.com/api/users/@me"

	oauthStateTTL = 10 * time.Minute
)

type discordUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`
}

// DiscordAuthService runs the OAuth2 authorization code flow against Discord
// and upserts the signed-in user.
type DiscordAuthService struct {
	oauth           *oauth2.Config
	meURL           string
	states          common.KeyStore
	users           *repositories.UserRepository
	defaultLanguage string
}

func NewDiscordAuthService(cfg config.DiscordConfig, states common.KeyStore, users *repositories.UserRepository, defaultLanguage string) *DiscordAuthService {
	return &DiscordAuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   discordAuthURL,
				TokenURL:  discordTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		meURL:           discordMeURL,
		states:          states,
		users:           users,
		defaultLanguage: defaultLanguage,
	}
}

func stateKey(state string) string {
	return string(constants.CachePrefixOAuthState) + state
}

// BeginLogin stores a single-use state and returns the Discord consent URL.
func (svc *DiscordAuthService) BeginLogin(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := svc.states.Put(ctx, stateKey(state), oauthStateTTL); err != nil {
		return "", dbError("discord.begin_login", err)
	}
	return svc.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "none")), nil
}

// CompleteLogin consumes the state, exchanges the code and upserts the user.
func (svc *DiscordAuthService) CompleteLogin(ctx context.Context, state, code string) (*gormModels.User, error) {
	const op = "discord.complete_login"

	if state == "" || code == "" {
		return nil, invalid(op, "missing state or code")
	}
	ok, err := svc.states.Take(ctx, stateKey(state))
	if err != nil {
		return nil, dbError(op, err)
	}
	if !ok {
		return nil, forbidden(op, "unknown or reused oauth state")
	}

	token, err := svc.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, dbError(op, fmt.Errorf("exchange code: %w", err))
	}

	profile, err := svc.fetchProfile(ctx, token)
	if err != nil {
		return nil, dbError(op, err)
	}

	user, err := svc.users.UpsertDiscordUser(ctx, repositories.DiscordProfile{
		ID:            profile.ID,
		Username:      profile.Username,
		Discriminator: profile.Discriminator,
		Avatar:        profile.Avatar,
	}, svc.defaultLanguage)
	if err != nil {
		return nil, dbError(op, err)
	}

	logging.Info("Discord login completed", "user_id", user.ID, "discord_id", user.DiscordID)
	return user, nil
}

func (svc *DiscordAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*discordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.meURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := svc.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch discord profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord profile returned %d", resp.StatusCode)
	}

	var profile discordUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode discord profile: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("discord profile without id")
	}
	return &profile, nil
}
