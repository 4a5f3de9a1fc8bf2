package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sanggwon/internal/chart"
	"sanggwon/internal/config"
	"sanggwon/internal/dataset"
	"sanggwon/internal/growth"
	"sanggwon/internal/scheduler"
	"sanggwon/internal/server"
	"sanggwon/internal/util"
)

var (
	port       = flag.Int("port", 0, "서비스 포트 (config.toml 에 port 가 없을 때만 적용)")
	devMode    = flag.Bool("dev", false, "개발 모드")
	source     = flag.String("source", "", "원본 파일 경로 (설정 파일보다 우선)")
	configPath = flag.String("config", "", "설정 파일 경로 (기본: 실행 파일 옆 config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  서울시 추정매출 기반 성장 상권 분석")
	fmt.Println("==========================================")

	// 설정 로딩
	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		log.Printf("설정 로딩 실패, 기본 설정 사용: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 명령행 인자 덮어쓰기
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *source != "" {
		cfg.Data.SourcePath = *source
	}

	sourcePath := config.ResolveSourcePath(cfg)
	fmt.Printf("원본 파일: %s\n", sourcePath)

	cache := dataset.NewCacheFromOptions(dataset.LoadOptions{
		Path:     sourcePath,
		Encoding: cfg.Data.Encoding,
		Sheet:    cfg.Data.Sheet,
	})

	// 시작 시 로딩 실패는 치명적
	table, err := cache.Get()
	if err != nil {
		log.Fatalf("원본 데이터 로딩 실패: %v", err)
	}
	report := cache.Report()
	fmt.Printf("로딩 완료: %d행 사용, %d행 제외 (%v)\n", report.KeptRows, report.DroppedRows, report.Duration)
	printLatest(table, cfg)

	charts := chart.NewRenderer()
	if cfg.Chart.FontPath != "" {
		if err := charts.UseFont(cfg.Chart.FontPath); err != nil {
			log.Printf("차트 글꼴 등록 실패, 상권 코드로 표시: %v", err)
		}
	}

	var reloader *scheduler.Reloader
	if cfg.Data.ReloadSchedule != "" {
		reloader, err = scheduler.NewReloader(cfg.Data.ReloadSchedule, func() error {
			_, err := cache.Reload()
			return err
		})
		if err != nil {
			log.Printf("자동 재로딩 비활성화: %v", err)
		} else {
			reloader.Start()
		}
	}

	srv, err := server.NewServer(cfg, cache, charts)
	if err != nil {
		log.Fatalf("서버 생성 실패: %v", err)
	}
	if reloader != nil {
		srv.SetReloadSchedule(reloader)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("서비스 시작, 포트 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("서비스 시작 실패: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("브라우저 여는 중: %s\n", url)
		if used, err := util.OpenBrowser(url); err != nil {
			log.Printf("브라우저 실행 실패: %v", err)
			fmt.Printf("브라우저를 열 수 없습니다. 직접 접속하세요: %s\n", url)
		} else {
			log.Printf("브라우저 실행: %s", used)
		}
	} else {
		fmt.Printf("개발 모드: %s 에 접속하세요\n", url)
	}

	fmt.Println("\nCtrl+C 로 종료합니다...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n서비스 종료 중...")
	if reloader != nil {
		reloader.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("종료 실패: %v", err)
	}
}

// printLatest 가장 최근 분기 1위 상권을 콘솔에 출력
func printLatest(table *dataset.Table, cfg *config.AppConfig) {
	latest, ok := table.Latest()
	if !ok {
		fmt.Println("데이터가 없습니다")
		return
	}
	opts, err := cfg.Ranking.Options()
	if err != nil {
		return
	}
	opts.TopN = 1
	top, err := growth.RankGrowth(table, latest, growth.PreviousPeriod(latest), opts)
	if err != nil || len(top) == 0 {
		fmt.Printf("최근 분기: %s (비교 가능한 상권 없음)\n", latest.Label())
		return
	}
	g := top[0]
	rate := "정의 불가"
	if !g.Undefined {
		rate = util.FormatPercent(g.GrowthPct)
	}
	fmt.Printf("최근 분기: %s, 1위 %s(%s) %s, 매출 %s\n",
		latest.Label(), g.DistrictName, g.DistrictCode, rate, util.FormatWon(g.RecentSales))
}
