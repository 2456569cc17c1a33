package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Kamien29/converter-planu/internal/config"
	"github.com/Kamien29/converter-planu/internal/converter"
	"github.com/Kamien29/converter-planu/internal/server"
	"github.com/Kamien29/converter-planu/internal/store"
	"github.com/Kamien29/converter-planu/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (覆盖配置文件)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	inPath  = flag.String("in", "", "课表 Excel 文件 (无界面模式，转换后退出)")
	outPath = flag.String("out", "", "SQL 输出文件 (默认与输入同名，扩展名 .sql)")
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// 无界面模式：一次性转换后退出
	if *inPath != "" {
		os.Exit(runOnce(cfg, *inPath, *outPath))
	}

	fmt.Println("==========================================")
	fmt.Println("  PlanConv - 课表 Excel 转 SQL 工具")
	fmt.Println("==========================================")

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		log.Printf("关闭存储失败: %v", err)
	}
}

// runOnce 无界面一次性转换：进度打到标准输出，返回进程退出码
func runOnce(cfg *config.AppConfig, in, out string) int {
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".sql"
	}

	// 历史记录尽力而为，打不开数据库不阻塞转换
	var runStore *store.Store
	if dir, err := config.EnsureDataDir(cfg); err == nil {
		if st, err := store.New(filepath.Join(dir, "planconv.db")); err == nil {
			runStore = st
			defer runStore.Close()
		} else {
			log.Printf("打开历史数据库失败，本次运行不记录: %v", err)
		}
	}

	coordinator := converter.NewCoordinator(runStore)
	report, err := coordinator.Run(converter.Options{
		InputPath:  in,
		OutputPath: out,
	}, func(line string) {
		fmt.Println(line)
	})
	if err != nil {
		log.Printf("转换失败: %v", err)
		return 1
	}

	fmt.Printf("共 %d 条记录, %d 条警告\n", report.EntryCount, len(report.Warnings))
	for _, w := range report.Warnings {
		fmt.Println("! " + w)
	}
	return 0
}
