package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Admin implementa accounts.IdentityAdmin contra Cognito usando las
// credenciales del servidor. Las operaciones sobre la propia cuenta
// (change password, delete) van con el access token del usuario.
type Admin struct {
	client       *cip.Client
	clientID     string
	clientSecret string
}

type AdminConfig struct {
	ClientID     string
	ClientSecret string // opcional; si está, se manda SecretHash
	Region       string // opcional; default: config del SDK
}

func NewAdmin(ctx context.Context, cfg AdminConfig) (*Admin, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("cognito admin: client id required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if strings.TrimSpace(cfg.Region) != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cognito admin: load aws config: %w", err)
	}

	return &Admin{
		client:       cip.NewFromConfig(awsCfg),
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
	}, nil
}

func (a *Admin) SignUp(ctx context.Context, username, password, email string) (string, error) {
	in := &cip.SignUpInput{
		ClientId: aws.String(a.clientID),
		Username: aws.String(username),
		Password: aws.String(password),
	}
	if email != "" {
		in.UserAttributes = []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		}
	}
	if h := a.secretHash(username); h != "" {
		in.SecretHash = aws.String(h)
	}

	out, err := a.client.SignUp(ctx, in)
	if err != nil {
		return "", fmt.Errorf("cognito sign up: %w", err)
	}
	if out.UserSub == nil {
		return "", nil
	}
	return *out.UserSub, nil
}

func (a *Admin) Confirm(ctx context.Context, username, code string) error {
	in := &cip.ConfirmSignUpInput{
		ClientId:         aws.String(a.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	}
	if h := a.secretHash(username); h != "" {
		in.SecretHash = aws.String(h)
	}

	if _, err := a.client.ConfirmSignUp(ctx, in); err != nil {
		return fmt.Errorf("cognito confirm: %w", err)
	}
	return nil
}

func (a *Admin) ChangePassword(ctx context.Context, accessToken, previous, proposed string) error {
	_, err := a.client.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(previous),
		ProposedPassword: aws.String(proposed),
	})
	if err != nil {
		return fmt.Errorf("cognito change password: %w", err)
	}
	return nil
}

func (a *Admin) DeleteAccount(ctx context.Context, accessToken string) error {
	if _, err := a.client.DeleteUser(ctx, &cip.DeleteUserInput{
		AccessToken: aws.String(accessToken),
	}); err != nil {
		return fmt.Errorf("cognito delete user: %w", err)
	}
	return nil
}

// secretHash = base64(hmac-sha256(secret, username + clientID)),
// requerido cuando el app client tiene secret.
func (a *Admin) secretHash(username string) string {
	if a.clientSecret == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(a.clientSecret))
	mac.Write([]byte(username + a.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
