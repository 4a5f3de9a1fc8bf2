package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"sanggwon/internal/growth"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Ranking RankingConfig `toml:"ranking"`
	Chart   ChartConfig   `toml:"chart"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int  `toml:"port" validate:"min=1,max=65535"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 원본 데이터 설정
type DataConfig struct {
	SourcePath     string `toml:"source_path" validate:"required"`
	Encoding       string `toml:"encoding" validate:"omitempty,oneof=cp949 ms949 euc-kr euckr uhc utf-8 utf8"`
	Sheet          string `toml:"sheet"`           // xlsx 원본일 때 시트명
	ReloadSchedule string `toml:"reload_schedule"` // cron 표현식, 비어 있으면 자동 재로딩 없음
}

// RankingConfig 순위 계산 설정
type RankingConfig struct {
	TopN           int    `toml:"top_n" validate:"min=1,max=1000"`
	JoinPolicy     string `toml:"join_policy" validate:"oneof=cross_product first_match sum"`
	ZeroBasePolicy string `toml:"zero_base_policy" validate:"oneof=exclude flag"`
}

// ChartConfig 차트 설정
type ChartConfig struct {
	FontPath string `toml:"font_path"` // 한글 TTF/OTF, 비어 있으면 상권 코드로 표시
}

// LoadConfigInfo 설정 로딩 메타 정보
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultSourceFile 서울시 상권분석서비스 추정매출 원본 파일명
const DefaultSourceFile = "서울시 상권분석서비스(추정매출-상권배후지).csv"

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			SourcePath: DefaultSourceFile,
			Encoding:   "cp949",
		},
		Ranking: RankingConfig{
			TopN:           growth.DefaultTopN,
			JoinPolicy:     string(growth.JoinCrossProduct),
			ZeroBasePolicy: string(growth.ZeroBaseExclude),
		},
	}
}

var validate = validator.New()

// Validate 설정값 검증
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options 순위 계산 옵션으로 변환
func (r RankingConfig) Options() (growth.Options, error) {
	join, err := growth.ParseJoinPolicy(r.JoinPolicy)
	if err != nil {
		return growth.Options{}, err
	}
	zeroBase, err := growth.ParseZeroBasePolicy(r.ZeroBasePolicy)
	if err != nil {
		return growth.Options{}, err
	}
	return growth.Options{TopN: r.TopN, Join: join, ZeroBase: zeroBase}, nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 실행 파일 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 실행 파일 옆의 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo config.toml 로딩 (path 가 비어 있으면 실행 파일 옆)
// 파일이 없으면 기본 설정을 쓴다. 환경 변수가 파일보다 우선한다.
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 기본 설정 사용
	default:
		return nil, info, err
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// applyEnv 환경 변수 덮어쓰기
func applyEnv(config *AppConfig) {
	if v := os.Getenv("SANGGWON_SOURCE_PATH"); v != "" {
		config.Data.SourcePath = v
	}
	if v := os.Getenv("SANGGWON_SOURCE_ENCODING"); v != "" {
		config.Data.Encoding = strings.ToLower(v)
	}
	if v := os.Getenv("SANGGWON_CHART_FONT"); v != "" {
		config.Chart.FontPath = v
	}
}

// ResolveSourcePath 상대 경로는 작업 디렉터리, 없으면 실행 파일 디렉터리 기준
func ResolveSourcePath(config *AppConfig) string {
	p := config.Data.SourcePath
	if filepath.IsAbs(p) {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		return p
	}
	exeDir, err := GetExeDir()
	if err != nil {
		return p
	}
	return filepath.Join(exeDir, p)
}
