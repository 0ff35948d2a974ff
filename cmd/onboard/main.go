// Command onboard walks the three-step onboarding wizard from the
// terminal: sign in, fill the fields, attach files, submit.
//
//	onboard -server http://localhost:8080 -email you@example.com -password secret \
//	  -client-name "Acme" -client-email a@b.com -details "hello" -file ./brief.pdf
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
	"github.com/evergreenwebsolutions/onboarding/internal/wizard"
)

func main() {
	var (
		server      = flag.String("server", "http://localhost:8080", "onboarding server base URL")
		email       = flag.String("email", "", "account email for sign-in")
		password    = flag.String("password", "", "account password for sign-in")
		clientName  = flag.String("client-name", "", "client name (step 1)")
		clientEmail = flag.String("client-email", "", "client email (step 2)")
		details     = flag.String("details", "", "free-text details (step 2)")
		files       []string
	)
	flag.Func("file", "file to attach (repeatable)", func(path string) error {
		files = append(files, path)
		return nil
	})
	flag.Parse()

	ctx := context.Background()
	client := &apiClient{base: *server, http: http.DefaultClient}

	if err := client.login(ctx, *email, *password); err != nil {
		fatalf("sign-in failed: %v", err)
	}

	w := wizard.New(client, client)

	w.SetClientName(*clientName)
	if !w.Next() {
		fatalErrors("step 1", w.Errors())
	}

	w.SetEmail(*clientEmail)
	w.SetDetails(*details)
	if !w.Next() {
		fatalErrors("step 2", w.Errors())
	}

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			fatalf("open %s: %v", path, err)
		}
		name := filepath.Base(path)
		ct := mime.TypeByExtension(filepath.Ext(path))
		err = w.Upload(ctx, name, ct, f)
		f.Close()
		if err != nil {
			fatalf("upload %s: %v", path, err)
		}
		fmt.Printf("attached %s\n", name)
	}

	if err := w.Submit(ctx); err != nil {
		if len(w.Errors()) > 0 {
			fatalErrors("submit", w.Errors())
		}
		fatalf("submit failed: %v (state preserved, re-run to retry)", err)
	}

	fmt.Printf("submission stored with id %d\n", w.SubmissionID())
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func fatalErrors(stage string, errs map[string][]string) {
	fmt.Fprintf(os.Stderr, "%s has errors:\n", stage)
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range errs[k] {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", k, msg)
		}
	}
	os.Exit(1)
}

// apiClient talks to the onboarding server and satisfies the wizard's
// Uploader and Submitter interfaces.
type apiClient struct {
	base  string
	token string
	http  *http.Client
}

func (c *apiClient) login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("both -email and -password are required")
	}
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	c.token = result.Token
	return nil
}

func (c *apiClient) Upload(ctx context.Context, name, contentType string, r io.Reader) (models.FileMeta, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return models.FileMeta{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.FileMeta{}, err
	}
	mw.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/upload", &buf)
	if err != nil {
		return models.FileMeta{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.FileMeta{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.FileMeta{}, fmt.Errorf("upload: server returned %s", resp.Status)
	}

	var fd models.FileMeta
	if err := json.NewDecoder(resp.Body).Decode(&fd); err != nil {
		return models.FileMeta{}, err
	}
	return fd, nil
}

func (c *apiClient) Submit(ctx context.Context, sub *models.Submission) (uint, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/form", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("submit: server returned %s", resp.Status)
	}

	var result struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.ID, nil
}
