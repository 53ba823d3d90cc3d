package store

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/persistence"
	"github.com/duetapp/duet/internal/remote"
)

const (
	codePrefix   = "TOGETHER-"
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLen      = 6
)

// AuthState is the persisted local view of the signed-in account and
// its partner link.
type AuthState struct {
	User          *model.User     `json:"user"`
	Partner       *model.Partner  `json:"partner"`
	Link          model.LinkState `json:"link"`
	Authenticated bool            `json:"authenticated"`
}

// AuthStore owns the account/partner-link workflow. It is the only
// store that talks to the remote identity and document collaborators;
// everything else it does is a local mutation persisted like the other
// stores.
type AuthStore struct {
	mu    sync.Mutex
	state AuthState
	kv    persistence.Store
	docs  remote.DocumentService
	ident remote.IdentityService
}

func NewAuthStore(kv persistence.Store, docs remote.DocumentService, ident remote.IdentityService) (*AuthStore, error) {
	s := &AuthStore{
		kv:    kv,
		docs:  docs,
		ident: ident,
		state: AuthState{Link: model.LinkUnlinked},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AuthStore) load() error {
	blob, ok, err := s.kv.Get(persistence.KeyAuth)
	if err != nil {
		return fmt.Errorf("load auth state: %w", err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(blob, &s.state); err != nil {
		return fmt.Errorf("decode auth state: %w", err)
	}
	if s.state.Link == "" {
		s.state.Link = model.LinkUnlinked
	}
	return nil
}

func (s *AuthStore) persist() error {
	blob, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode auth state: %w", err)
	}
	if err := s.kv.Set(persistence.KeyAuth, blob); err != nil {
		return fmt.Errorf("persist auth state: %w", err)
	}
	return nil
}

// generateConnectionCode returns the public linking token: the fixed
// prefix plus 6 random uppercase base-36 characters.
func generateConnectionCode() (string, error) {
	var b strings.Builder
	b.WriteString(codePrefix)
	for i := 0; i < codeLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate connection code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// Register creates the remote account, writes the user document with a
// fresh connection code, and sets local authenticated state. Identity
// failures surface with their underlying reason.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}

	accountID, err := s.ident.CreateAccount(ctx, email, password)
	if err != nil {
		return &RemoteError{Op: "create account", Err: err}
	}
	if err := s.ident.SetDisplayName(ctx, accountID, name); err != nil {
		return &RemoteError{Op: "set display name", Err: err}
	}

	code, err := generateConnectionCode()
	if err != nil {
		return err
	}

	err = s.docs.CreateDocument(ctx, remote.UsersCollection, accountID, map[string]any{
		"uid":         accountID,
		"name":        name,
		"email":       strings.ToLower(email),
		"partnerCode": code,
		"partnerId":   nil,
	})
	if err != nil {
		return &RemoteError{Op: "create user document", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthState{
		User: &model.User{
			ID:             accountID,
			Name:           name,
			Email:          strings.ToLower(email),
			ConnectionCode: code,
		},
		Partner:       nil,
		Link:          model.LinkUnlinked,
		Authenticated: true,
	}
	return s.persist()
}

// Login authenticates against the same identity collaborator Register
// uses, then restores the local view from the caller's own user
// document, including an existing partner link.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return &ValidationError{Field: "credentials", Reason: "email and password are required"}
	}

	accountID, err := s.ident.Authenticate(ctx, email, password)
	if err != nil {
		return &RemoteError{Op: "authenticate", Err: err}
	}

	docs, err := s.docs.QueryEquals(ctx, remote.UsersCollection, "email", strings.ToLower(email))
	if err != nil {
		return &RemoteError{Op: "load user document", Err: err}
	}
	var own *remote.Document
	for i := range docs {
		if docs[i].ID == accountID {
			own = &docs[i]
			break
		}
	}
	if own == nil {
		return &RemoteError{Op: "load user document", Err: fmt.Errorf("no document for account %s", accountID)}
	}

	var partner *model.Partner
	link := model.LinkUnlinked
	if partnerID := own.String("partnerId"); partnerID != "" {
		matches, err := s.docs.QueryEquals(ctx, remote.UsersCollection, "uid", partnerID)
		if err != nil {
			return &RemoteError{Op: "load partner document", Err: err}
		}
		if len(matches) > 0 {
			partner = &model.Partner{ID: partnerID, Name: matches[0].String("name")}
			link = model.LinkLinked
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthState{
		User: &model.User{
			ID:             accountID,
			Name:           own.String("name"),
			Email:          strings.ToLower(email),
			ConnectionCode: own.String("partnerCode"),
		},
		Partner:       partner,
		Link:          link,
		Authenticated: true,
	}
	return s.persist()
}

// ConnectPartner links the caller with the owner of the given
// connection code. The two remote writes run as a two-phase step: the
// link is pending while they are in flight, and a failure of the
// second write triggers a compensating rollback of the first.
func (s *AuthStore) ConnectPartner(ctx context.Context, codeInput string) error {
	s.mu.Lock()
	if !s.state.Authenticated || s.state.User == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	user := *s.state.User
	s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(codeInput))
	if code == "" {
		return &ValidationError{Field: "code", Reason: "must not be empty"}
	}
	if code == user.ConnectionCode {
		return &ValidationError{Field: "code", Reason: "cannot link to yourself"}
	}

	matches, err := s.docs.QueryEquals(ctx, remote.UsersCollection, "partnerCode", code)
	if err != nil {
		return &RemoteError{Op: "query partner code", Err: err}
	}
	if len(matches) == 0 {
		return ErrInvalidPartnerCode
	}
	// Codes are not guaranteed unique; first match wins.
	match := matches[0]
	if match.ID == user.ID {
		return &ValidationError{Field: "code", Reason: "cannot link to yourself"}
	}

	if err := s.setLink(model.LinkPending, nil); err != nil {
		return err
	}

	if err := s.docs.UpdateDocument(ctx, remote.UsersCollection, user.ID, map[string]any{
		"partnerId": match.ID,
	}); err != nil {
		if unlinkErr := s.setLink(model.LinkUnlinked, nil); unlinkErr != nil {
			err = fmt.Errorf("%w (unlink persist also failed: %v)", err, unlinkErr)
		}
		return &RemoteError{Op: "link own document", Err: err}
	}

	if err := s.docs.UpdateDocument(ctx, remote.UsersCollection, match.ID, map[string]any{
		"partnerId": user.ID,
	}); err != nil {
		// Compensating rollback of the first write. Best effort: a
		// rollback failure is folded into the returned error.
		rbErr := s.docs.UpdateDocument(ctx, remote.UsersCollection, user.ID, map[string]any{
			"partnerId": nil,
		})
		if rbErr != nil {
			err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		if unlinkErr := s.setLink(model.LinkUnlinked, nil); unlinkErr != nil {
			err = fmt.Errorf("%w (unlink persist also failed: %v)", err, unlinkErr)
		}
		return &RemoteError{Op: "link partner document", Err: err}
	}

	return s.setLink(model.LinkLinked, &model.Partner{ID: match.ID, Name: match.String("name")})
}

func (s *AuthStore) setLink(link model.LinkState, partner *model.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Link = link
	s.state.Partner = partner
	return s.persist()
}

// Logout clears local auth state only; no remote session exists to
// invalidate.
func (s *AuthStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthState{Link: model.LinkUnlinked}
	return s.persist()
}

// State returns a snapshot of the auth state.
func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	if s.state.Partner != nil {
		p := *s.state.Partner
		out.Partner = &p
	}
	return out
}
