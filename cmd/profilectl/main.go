// Command profilectl edits the caller's profile from a terminal. It runs the
// same form session the web client uses, in process, against the configured
// Postgres, Redis and Cloudinary backends.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/khoahotran/talent-profile/adapters/media_storage"
	"github.com/khoahotran/talent-profile/adapters/persistence"
	"github.com/khoahotran/talent-profile/internal/application/form"
	"github.com/khoahotran/talent-profile/internal/application/service"
	profileUC "github.com/khoahotran/talent-profile/internal/application/usecase/profile"
	resumeUC "github.com/khoahotran/talent-profile/internal/application/usecase/resume"
	sessionUC "github.com/khoahotran/talent-profile/internal/application/usecase/session"
	"github.com/khoahotran/talent-profile/internal/config"
	domain "github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/internal/domain/resume"
	"github.com/khoahotran/talent-profile/pkg/auth"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type options struct {
	token     string
	skills    string
	interests string
	level     string
	location  string
	bio       string
	github    string
	linkedin  string
	portfolio string
	resume    string
	signOut   bool
	timeout   time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.token, "token", os.Getenv("PROFILE_TOKEN"), "bearer token identifying the caller (default $PROFILE_TOKEN)")
	flag.StringVar(&opts.skills, "skills", "", "comma separated skills")
	flag.StringVar(&opts.interests, "interests", "", "comma separated interests")
	flag.StringVar(&opts.level, "level", "", "experience level: intern, entry, mid or senior")
	flag.StringVar(&opts.location, "location", "", "preferred location")
	flag.StringVar(&opts.bio, "bio", "", "short bio")
	flag.StringVar(&opts.github, "github", "", "GitHub profile URL")
	flag.StringVar(&opts.linkedin, "linkedin", "", "LinkedIn profile URL")
	flag.StringVar(&opts.portfolio, "portfolio", "", "portfolio URL")
	flag.StringVar(&opts.resume, "resume", "", "path to a PDF or Word resume to upload")
	flag.BoolVar(&opts.signOut, "sign-out", false, "revoke the token and exit")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "profilectl: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.token == "" {
		return fmt.Errorf("a -token is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.NewZapLogger(cfg.App.Env, "profilectl")
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	pool, err := persistence.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := persistence.NewRedisClient(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer rdb.Close()

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, log)
	if err != nil {
		return err
	}

	store := persistence.NewRedisSessionStore(rdb)
	resolver := sessionUC.NewTokenResolver(auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan), store, log)
	backend := form.NewLocalBackend(
		profileUC.NewProfileUseCase(persistence.NewPostgresProfileRepo(pool, log), resolver, uploader, service.NopPublisher{}, log),
		resumeUC.NewUploadResumeUseCase(uploader, service.NopPublisher{}, log),
		sessionUC.NewSignOutUseCase(resolver, store, log),
		uploader,
	)

	sess := form.NewSession(backend, opts.token, log)

	if opts.signOut {
		if !sess.SignOut(ctx) {
			return noticeError(sess.View())
		}
		fmt.Println("signed out")
		return nil
	}

	sess.Activate(ctx)
	switch v := sess.View(); v.State {
	case form.StateUnauthenticated:
		return fmt.Errorf("not signed in: the token is missing, expired or revoked")
	case form.StateError:
		return noticeError(v)
	}

	edits := map[string]func(*form.Draft, string){
		"skills":    func(d *form.Draft, s string) { d.Skills = s },
		"interests": func(d *form.Draft, s string) { d.Interests = s },
		"level":     func(d *form.Draft, s string) { d.ExperienceLevel = s },
		"location":  func(d *form.Draft, s string) { d.PreferredLocation = s },
		"bio":       func(d *form.Draft, s string) { d.Bio = s },
		"github":    func(d *form.Draft, s string) { d.GithubURL = s },
		"linkedin":  func(d *form.Draft, s string) { d.LinkedinURL = s },
		"portfolio": func(d *form.Draft, s string) { d.PortfolioURL = s },
	}
	changed := false
	flag.Visit(func(f *flag.Flag) {
		if edit, ok := edits[f.Name]; ok {
			value := f.Value.String()
			sess.Update(func(d *form.Draft) { edit(d, value) })
			changed = true
		}
	})

	if opts.resume != "" {
		file, closeFile, err := openResume(opts.resume)
		if err != nil {
			return err
		}
		defer closeFile()
		sess.StageFile(file)
		changed = true
	}

	if changed && !sess.Submit(ctx) {
		return noticeError(sess.View())
	}

	printView(sess.View())
	return nil
}

// openResume stats and sniffs a local file, falling back to the extension
// when the content is not recognised. The returned File keeps the
// *os.File as its content so a retried submission can seek back to the start.
func openResume(path string) (resume.File, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return resume.File{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return resume.File{}, nil, err
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		f.Close()
		return resume.File{}, nil, err
	}
	contentType := detected.String()
	if detected.Is("application/octet-stream") {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			contentType = byExt
		}
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	return resume.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Content:     f,
	}, f.Close, nil
}

func noticeError(v form.View) error {
	if v.Notice != nil {
		return fmt.Errorf("%s", v.Notice.Message)
	}
	return fmt.Errorf("request failed")
}

func printView(v form.View) {
	if v.Notice != nil {
		fmt.Println(v.Notice.Message)
	}
	if v.Baseline == nil {
		fmt.Printf("%s has no profile yet\n", v.Identity.Email)
		return
	}
	p := v.Baseline
	level := ""
	if p.ExperienceLevel != nil {
		level = string(*p.ExperienceLevel)
	}
	fmt.Printf("owner:      %s\n", p.OwnerID)
	fmt.Printf("skills:     %s\n", domain.JoinList(p.Skills))
	fmt.Printf("interests:  %s\n", domain.JoinList(p.Interests))
	fmt.Printf("level:      %s\n", level)
	fmt.Printf("location:   %s\n", v.Draft.PreferredLocation)
	fmt.Printf("bio:        %s\n", v.Draft.Bio)
	fmt.Printf("github:     %s\n", v.Draft.GithubURL)
	fmt.Printf("linkedin:   %s\n", v.Draft.LinkedinURL)
	fmt.Printf("portfolio:  %s\n", v.Draft.PortfolioURL)
	fmt.Printf("resume:     %s\n", v.Draft.ResumeURL)
	fmt.Printf("updated at: %s\n", p.UpdatedAt.Format(time.RFC3339))
}
