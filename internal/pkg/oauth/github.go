package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const (
	githubUserAPI   = "https://api.github.com/user"
	githubEmailsAPI = "https://api.github.com/user/emails"
)

// GithubUser GitHub 账号信息，登录后映射为本站会员
type GithubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
}

// GithubClient GitHub OAuth 登录客户端
type GithubClient struct {
	config *oauth2.Config
}

func NewGithubClient(clientID, clientSecret, redirectURI string) *GithubClient {
	return &GithubClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

// AuthURL 带 state 的 GitHub 授权页地址
func (g *GithubClient) AuthURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// ExchangeCode 授权码换 access token
func (g *GithubClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

// FetchUser 拉取账号信息。profile 上未公开邮箱时
// 再查一次邮箱接口补齐主邮箱。
func (g *GithubClient) FetchUser(ctx context.Context, token *oauth2.Token) (*GithubUser, error) {
	client := g.config.Client(ctx, token)

	var user GithubUser
	if err := g.getJSON(ctx, client, githubUserAPI, &user); err != nil {
		return nil, fmt.Errorf("fetch github profile: %w", err)
	}

	if user.Email == "" {
		if email, err := g.primaryEmail(ctx, client); err == nil {
			user.Email = email
		}
	}

	return &user, nil
}

func (g *GithubClient) primaryEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := g.getJSON(ctx, client, githubEmailsAPI, &emails); err != nil {
		return "", fmt.Errorf("fetch github emails: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("no verified email on github account")
}

func (g *GithubClient) getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
