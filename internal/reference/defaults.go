package reference

// Default reference data shipped with the binary. Deployments can replace any
// section through a file or database loader.

// DefaultBanks is the NAPAS VietQR participant list.
func DefaultBanks() []Bank {
	return []Bank{
		{Code: "VCB", Name: "Ngan hang TMCP Ngoai thuong Viet Nam", ShortName: "Vietcombank", BIN: "970436", Aliases: []string{"VIETCOMBANK"}},
		{Code: "BIDV", Name: "Ngan hang TMCP Dau tu va Phat trien Viet Nam", ShortName: "BIDV", BIN: "970418"},
		{Code: "CTG", Name: "Ngan hang TMCP Cong thuong Viet Nam", ShortName: "VietinBank", BIN: "970415", Aliases: []string{"ICB", "VIETINBANK"}},
		{Code: "VBA", Name: "Ngan hang Nong nghiep va Phat trien Nong thon Viet Nam", ShortName: "Agribank", BIN: "970405", Aliases: []string{"AGRIBANK"}},
		{Code: "TCB", Name: "Ngan hang TMCP Ky thuong Viet Nam", ShortName: "Techcombank", BIN: "970407", Aliases: []string{"TECHCOMBANK"}},
		{Code: "ACB", Name: "Ngan hang TMCP A Chau", ShortName: "ACB", BIN: "970416"},
		{Code: "MB", Name: "Ngan hang TMCP Quan doi", ShortName: "MBBank", BIN: "970422", Aliases: []string{"MBBANK"}},
		{Code: "VPB", Name: "Ngan hang TMCP Viet Nam Thinh Vuong", ShortName: "VPBank", BIN: "970432", Aliases: []string{"VPBANK"}},
		{Code: "TPB", Name: "Ngan hang TMCP Tien Phong", ShortName: "TPBank", BIN: "970423", Aliases: []string{"TPBANK"}},
		{Code: "STB", Name: "Ngan hang TMCP Sai Gon Thuong Tin", ShortName: "Sacombank", BIN: "970403", Aliases: []string{"SACOMBANK"}},
		{Code: "VIB", Name: "Ngan hang TMCP Quoc te Viet Nam", ShortName: "VIB", BIN: "970441"},
		{Code: "SHB", Name: "Ngan hang TMCP Sai Gon - Ha Noi", ShortName: "SHB", BIN: "970443"},
		{Code: "HDB", Name: "Ngan hang TMCP Phat trien Thanh pho Ho Chi Minh", ShortName: "HDBank", BIN: "970437", Aliases: []string{"HDBANK"}},
		{Code: "OCB", Name: "Ngan hang TMCP Phuong Dong", ShortName: "OCB", BIN: "970448"},
		{Code: "MSB", Name: "Ngan hang TMCP Hang Hai", ShortName: "MSB", BIN: "970426"},
		{Code: "EIB", Name: "Ngan hang TMCP Xuat Nhap khau Viet Nam", ShortName: "Eximbank", BIN: "970431", Aliases: []string{"EXIMBANK"}},
		{Code: "SCB", Name: "Ngan hang TMCP Sai Gon", ShortName: "SCB", BIN: "970429"},
		{Code: "SEAB", Name: "Ngan hang TMCP Dong Nam A", ShortName: "SeABank", BIN: "970440", Aliases: []string{"SEABANK"}},
		{Code: "LPB", Name: "Ngan hang TMCP Loc Phat Viet Nam", ShortName: "LPBank", BIN: "970449", Aliases: []string{"LPBANK", "LIENVIETPOSTBANK"}},
		{Code: "NAB", Name: "Ngan hang TMCP Nam A", ShortName: "NamABank", BIN: "970428", Aliases: []string{"NAMABANK"}},
		{Code: "BAB", Name: "Ngan hang TMCP Bac A", ShortName: "BacABank", BIN: "970409", Aliases: []string{"BACABANK"}},
		{Code: "ABB", Name: "Ngan hang TMCP An Binh", ShortName: "ABBANK", BIN: "970425", Aliases: []string{"ABBANK"}},
		{Code: "VAB", Name: "Ngan hang TMCP Viet A", ShortName: "VietABank", BIN: "970427", Aliases: []string{"VIETABANK"}},
		{Code: "KLB", Name: "Ngan hang TMCP Kien Long", ShortName: "KienLongBank", BIN: "970452", Aliases: []string{"KIENLONGBANK"}},
		{Code: "NCB", Name: "Ngan hang TMCP Quoc Dan", ShortName: "NCB", BIN: "970419"},
		{Code: "PGB", Name: "Ngan hang TMCP Thinh vuong va Phat trien", ShortName: "PGBank", BIN: "970430", Aliases: []string{"PGBANK"}},
		{Code: "PVCB", Name: "Ngan hang TMCP Dai Chung Viet Nam", ShortName: "PVcomBank", BIN: "970412", Aliases: []string{"PVCOMBANK"}},
		{Code: "BVB", Name: "Ngan hang TMCP Bao Viet", ShortName: "BaoVietBank", BIN: "970438", Aliases: []string{"BAOVIETBANK"}},
		{Code: "VCCB", Name: "Ngan hang TMCP Ban Viet", ShortName: "BVBank", BIN: "970454", Aliases: []string{"BANVIET"}},
		{Code: "OJB", Name: "Ngan hang Thuong mai TNHH MTV Dai Duong", ShortName: "OceanBank", BIN: "970414", Aliases: []string{"OCEANBANK"}},
		{Code: "GPB", Name: "Ngan hang Thuong mai TNHH MTV Dau Khi Toan Cau", ShortName: "GPBank", BIN: "970408", Aliases: []string{"GPBANK"}},
		{Code: "VIETBANK", Name: "Ngan hang TMCP Viet Nam Thuong Tin", ShortName: "VietBank", BIN: "970433"},
		{Code: "SGICB", Name: "Ngan hang TMCP Sai Gon Cong Thuong", ShortName: "SaigonBank", BIN: "970400", Aliases: []string{"SAIGONBANK"}},
		{Code: "DOB", Name: "Ngan hang TMCP Dong A", ShortName: "DongABank", BIN: "970406", Aliases: []string{"DONGABANK"}},
		{Code: "SHBVN", Name: "Ngan hang TNHH MTV Shinhan Viet Nam", ShortName: "ShinhanBank", BIN: "970424", Aliases: []string{"SHINHANBANK"}},
		{Code: "WVN", Name: "Ngan hang TNHH MTV Woori Viet Nam", ShortName: "Woori", BIN: "970457", Aliases: []string{"WOORI"}},
		{Code: "UOB", Name: "Ngan hang United Overseas - Chi nhanh TP. Ho Chi Minh", ShortName: "UOB", BIN: "970458"},
		{Code: "PBVN", Name: "Ngan hang TNHH MTV Public Viet Nam", ShortName: "PublicBank", BIN: "970439", Aliases: []string{"PUBLICBANK"}},
		{Code: "HLBVN", Name: "Ngan hang TNHH MTV Hong Leong Viet Nam", ShortName: "HongLeong", BIN: "970442", Aliases: []string{"HONGLEONG"}},
		{Code: "IVB", Name: "Ngan hang TNHH Indovina", ShortName: "IndovinaBank", BIN: "970434", Aliases: []string{"INDOVINA"}},
		{Code: "VRB", Name: "Ngan hang Lien doanh Viet - Nga", ShortName: "VRB", BIN: "970421"},
		{Code: "CIMB", Name: "Ngan hang TNHH MTV CIMB Viet Nam", ShortName: "CIMB", BIN: "422589"},
	}
}

// DefaultCurrencies are the WeChat Pay settlement currencies and their ceilings.
func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "CNY", MaxAmount: 1_000_000, Decimals: 2, Locale: "zh-CN"},
		{Code: "VND", MaxAmount: 5_000_000_000, Decimals: 2, Locale: "vi-VN"},
	}
}

// DefaultMobilePrefixes are the leading two digits of Vietnamese mobile numbers
// in local 0-prefixed form.
func DefaultMobilePrefixes() []string {
	return []string{"03", "05", "07", "08", "09"}
}

// DefaultPlatforms lists the deep-link targets the engine knows about.
func DefaultPlatforms() []Platform {
	return []Platform{
		{Code: "VIETQR", Name: "VietQR", Host: "img.vietqr.io"},
		{Code: "WECHAT_PAY", Name: "WeChat Pay"},
		{Code: "MOMO", Name: "MoMo", Host: "nhantien.momo.vn"},
		{Code: "ZALO", Name: "Zalo", Host: "zalo.me"},
		{Code: "KAKAOTALK", Name: "KakaoTalk", Host: "pf.kakao.com"},
		{Code: "LINE", Name: "LINE", Host: "line.me"},
		{Code: "WHATSAPP", Name: "WhatsApp", Host: "wa.me"},
	}
}

// DefaultData bundles every default section.
func DefaultData() Data {
	return Data{
		Banks:          DefaultBanks(),
		Currencies:     DefaultCurrencies(),
		MobilePrefixes: DefaultMobilePrefixes(),
		Platforms:      DefaultPlatforms(),
	}
}

// fillDefaults replaces empty sections with the built-in data.
func fillDefaults(d Data) Data {
	if len(d.Banks) == 0 {
		d.Banks = DefaultBanks()
	}
	if len(d.Currencies) == 0 {
		d.Currencies = DefaultCurrencies()
	}
	if len(d.MobilePrefixes) == 0 {
		d.MobilePrefixes = DefaultMobilePrefixes()
	}
	if len(d.Platforms) == 0 {
		d.Platforms = DefaultPlatforms()
	}
	return d
}
