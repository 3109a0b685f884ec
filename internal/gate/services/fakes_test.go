package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
)

type fakeStore struct {
	rec       *models.CredentialRecord
	saveCalls int
	loadCalls int

	saveErr   error
	loadErr   error
	existsErr error
}

func (f *fakeStore) Save(_ context.Context, rec models.CredentialRecord) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := models.CredentialRecord{Username: rec.Username, PasswordHash: append([]byte(nil), rec.PasswordHash...)}
	f.rec = &cp
	return nil
}

func (f *fakeStore) Load(_ context.Context) (models.CredentialRecord, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return models.CredentialRecord{}, f.loadErr
	}
	if f.rec == nil {
		return models.CredentialRecord{}, common.ErrNotFound
	}
	return *f.rec, nil
}

func (f *fakeStore) Exists(_ context.Context) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.rec != nil, nil
}

func (f *fakeStore) Backend() string { return "fake" }
func (f *fakeStore) Close() error    { return nil }

type attempt struct {
	username string
	password string
	err      error
}

type fakePrompter struct {
	attempts []attempt
	calls    int
	handed   [][]byte
}

func (p *fakePrompter) PromptCredentials(_ context.Context) (string, []byte, error) {
	if p.calls >= len(p.attempts) {
		return "", nil, fmt.Errorf("unexpected prompt #%d", p.calls+1)
	}
	a := p.attempts[p.calls]
	p.calls++
	if a.err != nil {
		return "", nil, a.err
	}
	pw := []byte(a.password)
	p.handed = append(p.handed, pw)
	return a.username, pw, nil
}

type fakeRegistrar struct {
	svc      *RegistrationService
	username string
	password string
	err      error
	calls    int
}

func (r *fakeRegistrar) RunRegistration(ctx context.Context) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	_, err := r.svc.Register(ctx, r.username, []byte(r.password))
	return err
}

type announcement struct {
	msg string
	sev Severity
}

type recordingAnnouncer struct {
	got []announcement
}

func (a *recordingAnnouncer) Announce(msg string, sev Severity) {
	a.got = append(a.got, announcement{msg: msg, sev: sev})
}

func (a *recordingAnnouncer) messages() []string {
	out := make([]string, 0, len(a.got))
	for _, x := range a.got {
		out = append(out, x.msg)
	}
	return out
}

// spyHasher records Verify calls and accepts exactly one password.
type spyHasher struct {
	accept      string
	verifyCalls int
}

func (h *spyHasher) Hash(p []byte) ([]byte, error) {
	return append([]byte("spy:"), p...), nil
}

func (h *spyHasher) Verify(p, digest []byte) bool {
	h.verifyCalls++
	return string(p) == h.accept && string(digest) == "spy:"+h.accept
}
