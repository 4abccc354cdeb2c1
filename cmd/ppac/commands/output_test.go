package commands

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/ppac/internal/app"
	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/zerr"
)

func plainOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	useColorProfile()
	return &bytes.Buffer{}
}

func TestPrintList(t *testing.T) {
	buf := plainOutput(t)

	printList(buf, []app.PackageStatus{
		{Name: "lib", Installed: "1.0", Available: "1.0", PURL: "pkg:generic/lib@1.0"},
		{Name: "orphan", Installed: "0.1", PURL: "pkg:generic/orphan@0.1"},
		{Name: "toolchain", Installed: "1.0", Available: "2.0", PURL: "pkg:generic/toolchain@1.0"},
	})

	goldie.New(t).Assert(t, "list", buf.Bytes())
}

func TestPrintInfo(t *testing.T) {
	main := domain.Repository{Name: "main", DisplayName: "Main Repository"}
	mirror := domain.Repository{Name: "mirror"}

	tests := []struct {
		name       string
		info       app.PackageInfo
		goldenName string
	}{
		{
			name: "installed and outdated",
			info: app.PackageInfo{
				Name:      "tool",
				Record:    domain.PackageRecord{Name: "tool", Version: "2.0", Dependencies: []string{"lib", "zlib"}},
				InCatalog: true,
				OfferedBy: []domain.Repository{main, mirror},
				Installed: "1.0",
				Files:     3,
				PURL:      "pkg:generic/tool@2.0",
			},
			goldenName: "info_outdated",
		},
		{
			name: "not installed",
			info: app.PackageInfo{
				Name:      "lib",
				Record:    domain.PackageRecord{Name: "lib", Version: "1.0", Dependencies: []string{}},
				InCatalog: true,
				OfferedBy: []domain.Repository{main},
				PURL:      "pkg:generic/lib@1.0",
			},
			goldenName: "info_available",
		},
		{
			name: "installed but no longer listed",
			info: app.PackageInfo{
				Name:      "orphan",
				Installed: "0.1",
				Files:     1,
				PURL:      "pkg:generic/orphan@0.1",
			},
			goldenName: "info_orphan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := plainOutput(t)
			printInfo(buf, tt.info)
			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrintRepositories(t *testing.T) {
	buf := plainOutput(t)

	printRepositories(buf, []app.RepositoryStatus{
		{
			Repository: domain.Repository{
				Name:        "main",
				DisplayName: "Main Repository",
				CatalogURL:  "https://main.example.com/packages.json",
				ArtifactURL: "https://main.example.com/pkgs",
			},
			Packages: 12,
		},
		{
			Repository: domain.Repository{
				Name:        "broken",
				CatalogURL:  "s3://broken/packages.json",
				ArtifactURL: "s3://broken/pkgs",
			},
			Err: zerr.New("failed to fetch package catalog"),
		},
	})

	goldie.New(t).Assert(t, "repos", buf.Bytes())
}
